package models

import (
	"time"
)

// 监测指标名称（与前端和持久化记录对齐，不要改动）
const (
	MetricHeartRate        = "heart_rate"
	MetricSystolic         = "systolic_bp"
	MetricDiastolic        = "diastolic_bp"
	MetricOxygenSaturation = "oxygen_saturation"
	MetricTemperature      = "temperature"
)

// AllMetrics 全部监测指标（固定顺序，用于特征向量和报表）
var AllMetrics = []string{
	MetricHeartRate,
	MetricSystolic,
	MetricDiastolic,
	MetricOxygenSaturation,
	MetricTemperature,
}

// Reading 一次生命体征观测快照（创建后不可变）
type Reading struct {
	HeartRate        int       `json:"heart_rate"`        // 心率 (bpm)
	Systolic         int       `json:"systolic_bp"`       // 收缩压 (mmHg)
	Diastolic        int       `json:"diastolic_bp"`      // 舒张压 (mmHg)
	OxygenSaturation float64   `json:"oxygen_saturation"` // 血氧饱和度 (%)
	Temperature      float64   `json:"temperature"`       // 体温 (°C)
	MeasuredAt       time.Time `json:"measured_at"`       // 观测时间
}

// MetricValue 按指标名称取值
func (r Reading) MetricValue(metric string) (float64, bool) {
	switch metric {
	case MetricHeartRate:
		return float64(r.HeartRate), true
	case MetricSystolic:
		return float64(r.Systolic), true
	case MetricDiastolic:
		return float64(r.Diastolic), true
	case MetricOxygenSaturation:
		return r.OxygenSaturation, true
	case MetricTemperature:
		return r.Temperature, true
	}
	return 0, false
}

// FeatureVector 五维特征向量（顺序与 AllMetrics 一致，供学习型分类器使用）
func (r Reading) FeatureVector() [5]float64 {
	return [5]float64{
		float64(r.HeartRate),
		float64(r.Systolic),
		float64(r.Diastolic),
		r.OxygenSaturation,
		r.Temperature,
	}
}
