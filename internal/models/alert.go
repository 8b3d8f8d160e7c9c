package models

import (
	"time"
)

// HealthAlert 健康报警记录
// 创建后除 Seen 标志外不可变；TriggerData 是触发时刻的数值快照
type HealthAlert struct {
	AlertID     string           `json:"alert_id"`
	Severity    Severity         `json:"severity"`
	Message     string           `json:"message"`
	TriggeredAt time.Time        `json:"triggered_at"`
	Seen        bool             `json:"seen"`
	TriggerData AlertTriggerData `json:"trigger_data"`
}

// AlertTriggerData 报警触发数据快照
// 保存触发时刻的指标值和状态，不引用后续可变状态
type AlertTriggerData struct {
	HeartRate        *int                `json:"heart_rate,omitempty"`
	Systolic         *int                `json:"systolic_bp,omitempty"`
	Diastolic        *int                `json:"diastolic_bp,omitempty"`
	OxygenSaturation *float64            `json:"oxygen_saturation,omitempty"`
	Temperature      *float64            `json:"temperature,omitempty"`
	MetricStatuses   map[string]Severity `json:"metric_statuses,omitempty"`
	Source           string              `json:"source"` // "reading" 或 "live_metric"
}

// HistoryEntry 历史账本条目：(Reading, 整体级别, 记录时间)
type HistoryEntry struct {
	Reading    Reading   `json:"reading"`
	Severity   Severity  `json:"severity"`
	RecordedAt time.Time `json:"recorded_at"`
}
