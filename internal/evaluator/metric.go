package evaluator

import (
	"math"

	"vitaltrack/internal/models"
)

// Range 数值区间（闭区间）
type Range struct {
	Min float64
	Max float64
}

// Contains 检查值是否落在区间内（含边界）
func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

// Bands 单项指标的正常区间和危急区间
// 约束：Critical 必须包含 Normal（Critical.Min <= Normal.Min 且
// Critical.Max >= Normal.Max）。区间表只允许常量定义，不接受用户输入
type Bands struct {
	Normal   Range
	Critical Range
}

// defaultBands 各指标的默认区间表
// 注意：数值与前端展示和历史数据兼容，不要改动
var defaultBands = map[string]Bands{
	models.MetricHeartRate: {
		Normal:   Range{Min: 60, Max: 100},
		Critical: Range{Min: 40, Max: 140},
	},
	models.MetricSystolic: {
		Normal:   Range{Min: 90, Max: 129},
		Critical: Range{Min: 70, Max: 180},
	},
	models.MetricDiastolic: {
		Normal:   Range{Min: 60, Max: 84},
		Critical: Range{Min: 40, Max: 120},
	},
	models.MetricOxygenSaturation: {
		// 血氧没有危急上限，只有下限 90%
		Normal:   Range{Min: 95, Max: 100},
		Critical: Range{Min: 90, Max: math.Inf(1)},
	},
	models.MetricTemperature: {
		Normal:   Range{Min: 36.1, Max: 37.2},
		Critical: Range{Min: 35, Max: 38.5},
	},
}

// EvaluateValue 将单个数值映射为级别（纯函数，对全体实数有定义）
// normal: 落在正常区间内（含边界）
// critical: 落在危急区间外（低于危急下限或高于危急上限）
// warning: 正常区间和危急区间之间的间隙
func EvaluateValue(value float64, bands Bands) models.Severity {
	if bands.Normal.Contains(value) {
		return models.SeverityNormal
	}
	if !bands.Critical.Contains(value) {
		return models.SeverityCritical
	}
	return models.SeverityWarning
}

// EvaluateMetric 按指标名称评估数值（未知指标返回 normal）
func EvaluateMetric(metric string, value float64) models.Severity {
	bands, ok := defaultBands[metric]
	if !ok {
		return models.SeverityNormal
	}
	return EvaluateValue(value, bands)
}

// EvaluateBloodPressure 评估血压（收缩压和舒张压独立评估，取更严重者）
func EvaluateBloodPressure(systolic, diastolic float64) models.Severity {
	return models.MaxSeverity(
		EvaluateMetric(models.MetricSystolic, systolic),
		EvaluateMetric(models.MetricDiastolic, diastolic),
	)
}

// MetricBands 返回指标的区间表（供测试和报表使用）
func MetricBands(metric string) (Bands, bool) {
	bands, ok := defaultBands[metric]
	return bands, ok
}
