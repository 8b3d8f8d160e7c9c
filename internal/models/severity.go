package models

// Severity 健康状态级别（全序：normal < warning < critical）
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// severityRank 级别排序值（用于所有级别比较和阈值判断）
var severityRank = map[Severity]int{
	SeverityNormal:   0,
	SeverityWarning:  1,
	SeverityCritical: 2,
}

// Rank 返回级别的排序值（未知级别按 normal 处理）
func (s Severity) Rank() int {
	return severityRank[s]
}

// Valid 检查级别是否合法
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// AtLeast 检查级别是否不低于 other
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// MaxSeverity 返回两个级别中更严重的一个
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
