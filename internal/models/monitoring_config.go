package models

// MonitoringConfig 监测配置（按用户持久化）
type MonitoringConfig struct {
	Active         bool            `json:"active"`
	AlertThreshold Severity        `json:"alert_threshold"`
	EnabledMetrics map[string]bool `json:"enabled_metrics"`
}

// DefaultMonitoringConfig 默认监测配置：监测开启、warning 触发报警、全部指标启用
func DefaultMonitoringConfig() MonitoringConfig {
	enabled := make(map[string]bool, len(AllMetrics))
	for _, m := range AllMetrics {
		enabled[m] = true
	}
	return MonitoringConfig{
		Active:         true,
		AlertThreshold: SeverityWarning,
		EnabledMetrics: enabled,
	}
}

// MetricEnabled 检查指标是否启用（缺省按启用处理）
func (c MonitoringConfig) MetricEnabled(metric string) bool {
	if c.EnabledMetrics == nil {
		return true
	}
	enabled, ok := c.EnabledMetrics[metric]
	if !ok {
		return true
	}
	return enabled
}
