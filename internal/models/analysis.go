package models

import (
	"time"
)

// MetricAssessment 单项指标的评估结果
// 由 Reading 确定性推导，仅作为 AnalysisResult 的一部分存在
type MetricAssessment struct {
	Metric   string   `json:"metric"`
	Value    float64  `json:"value"`
	Severity Severity `json:"severity"`
}

// AnalysisResult 一次 Reading 的整体判定（创建后不可变）
type AnalysisResult struct {
	Overall     Severity                    `json:"overall"`
	Assessments map[string]MetricAssessment `json:"assessments"`
	Explanation string                      `json:"explanation"`
	AnalyzedAt  time.Time                   `json:"analyzed_at"`
}

// WorstMetricSeverity 返回各单项指标中最严重的级别
func (r *AnalysisResult) WorstMetricSeverity() Severity {
	worst := SeverityNormal
	for _, a := range r.Assessments {
		worst = MaxSeverity(worst, a.Severity)
	}
	return worst
}
