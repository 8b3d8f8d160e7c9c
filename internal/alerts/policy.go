package alerts

import (
	"fmt"
	"time"

	"vitaltrack/internal/models"

	"github.com/google/uuid"
)

// Policy 报警判定策略
// 决定新评估出的级别是否应该产生报警，避免对未变化的状态重复报警
type Policy struct{}

// NewPolicy 创建报警策略
func NewPolicy() *Policy {
	return &Policy{}
}

// ShouldAlertOnReading 整体分析路径：每次分析超过阈值即产生一条聚合报警
func (p *Policy) ShouldAlertOnReading(cfg models.MonitoringConfig, overall models.Severity) bool {
	if !cfg.Active {
		return false
	}
	return overall.AtLeast(cfg.AlertThreshold)
}

// ShouldAlertOnMetric 单指标实时路径
// 报警条件：监测开启、指标启用、新级别达到阈值，且相对上一级别发生变化。
// 级别升高总是重新报警；完全相同的级别不重复报警；级别降低不报警
func (p *Policy) ShouldAlertOnMetric(cfg models.MonitoringConfig, metric string, previous, next models.Severity) bool {
	if !cfg.Active || !cfg.MetricEnabled(metric) {
		return false
	}
	if !next.AtLeast(cfg.AlertThreshold) {
		return false
	}
	return next.Rank() > previous.Rank()
}

// BuildReadingAlert 构建整体分析报警（聚合全部达到阈值的指标）
func (p *Policy) BuildReadingAlert(cfg models.MonitoringConfig, reading models.Reading, result *models.AnalysisResult) *models.HealthAlert {
	statuses := make(map[string]models.Severity, len(result.Assessments))
	qualifying := 0
	for metric, a := range result.Assessments {
		statuses[metric] = a.Severity
		if a.Severity.AtLeast(cfg.AlertThreshold) {
			qualifying++
		}
	}

	// 触发时刻的数值快照（值拷贝，不引用后续可变状态）
	hr := reading.HeartRate
	sys := reading.Systolic
	dia := reading.Diastolic
	oxy := reading.OxygenSaturation
	temp := reading.Temperature

	return &models.HealthAlert{
		AlertID:     uuid.New().String(),
		Severity:    result.Overall,
		Message:     fmt.Sprintf("Health status %s: %d metric(s) outside the configured threshold", result.Overall, qualifying),
		TriggeredAt: time.Now(),
		TriggerData: models.AlertTriggerData{
			HeartRate:        &hr,
			Systolic:         &sys,
			Diastolic:        &dia,
			OxygenSaturation: &oxy,
			Temperature:      &temp,
			MetricStatuses:   statuses,
			Source:           "reading",
		},
	}
}

// BuildMetricAlert 构建单指标实时报警
func (p *Policy) BuildMetricAlert(metric string, value float64, severity models.Severity) *models.HealthAlert {
	statuses := map[string]models.Severity{metric: severity}

	data := models.AlertTriggerData{
		MetricStatuses: statuses,
		Source:         "live_metric",
	}
	switch metric {
	case models.MetricHeartRate:
		v := int(value)
		data.HeartRate = &v
	case models.MetricSystolic:
		v := int(value)
		data.Systolic = &v
	case models.MetricDiastolic:
		v := int(value)
		data.Diastolic = &v
	case models.MetricOxygenSaturation:
		v := value
		data.OxygenSaturation = &v
	case models.MetricTemperature:
		v := value
		data.Temperature = &v
	}

	return &models.HealthAlert{
		AlertID:     uuid.New().String(),
		Severity:    severity,
		Message:     fmt.Sprintf("Metric %s is %s (value %.1f)", metric, severity, value),
		TriggeredAt: time.Now(),
		TriggerData: data,
	}
}
