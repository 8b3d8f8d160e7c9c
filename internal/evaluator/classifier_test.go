package evaluator

import (
	"fmt"
	"testing"

	"vitaltrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubPredictor 固定投票的分类器桩
type stubPredictor struct {
	vote models.Severity
	err  error
}

func (s *stubPredictor) Predict(features [5]float64) (models.Severity, error) {
	return s.vote, s.err
}

func normalReading() models.Reading {
	return models.Reading{
		HeartRate:        70,
		Systolic:         118,
		Diastolic:        76,
		OxygenSaturation: 98,
		Temperature:      36.5,
	}
}

// ============================================
// 整体判定规则
// ============================================

func TestAnalyze_AllNormal(t *testing.T) {
	c := NewClassifier(&stubPredictor{vote: models.SeverityNormal}, zap.NewNop())

	result := c.Analyze(normalReading())

	assert.Equal(t, models.SeverityNormal, result.Overall)
	require.Len(t, result.Assessments, 5)
	for metric, a := range result.Assessments {
		assert.Equal(t, models.SeverityNormal, a.Severity, metric)
	}
	assert.Contains(t, result.Explanation, "All readings look good")
}

func TestAnalyze_CriticalMetricDominatesModelVote(t *testing.T) {
	// 单项危急读数不允许被统计分类器降级
	c := NewClassifier(&stubPredictor{vote: models.SeverityNormal}, zap.NewNop())

	reading := normalReading()
	reading.Systolic = 190
	reading.Diastolic = 125

	result := c.Analyze(reading)

	assert.Equal(t, models.SeverityCritical, result.Overall)
	assert.Equal(t, models.SeverityCritical, result.Assessments[models.MetricSystolic].Severity)
	assert.Equal(t, models.SeverityCritical, result.Assessments[models.MetricDiastolic].Severity)
}

func TestAnalyze_OverallIsMaxOfWorstAndVote(t *testing.T) {
	// 规则结果 normal、模型投 warning → warning
	c := NewClassifier(&stubPredictor{vote: models.SeverityWarning}, zap.NewNop())
	result := c.Analyze(normalReading())
	assert.Equal(t, models.SeverityWarning, result.Overall)

	// 规则结果 warning、模型投 critical → critical（模型只能向上升级）
	c = NewClassifier(&stubPredictor{vote: models.SeverityCritical}, zap.NewNop())
	reading := normalReading()
	reading.HeartRate = 110
	result = c.Analyze(reading)
	assert.Equal(t, models.SeverityCritical, result.Overall)
}

func TestAnalyze_ModelErrorDefaultsToNormalVote(t *testing.T) {
	// 模型失败按 normal 投票处理，不向调用方传播错误
	c := NewClassifier(&stubPredictor{err: fmt.Errorf("model unavailable")}, zap.NewNop())

	reading := normalReading()
	reading.HeartRate = 110 // warning

	result := c.Analyze(reading)

	// 失败的投票不会把 warning 降级
	assert.Equal(t, models.SeverityWarning, result.Overall)
}

func TestAnalyze_InvalidModelVoteIgnored(t *testing.T) {
	c := NewClassifier(&stubPredictor{vote: models.Severity("bogus")}, zap.NewNop())

	result := c.Analyze(normalReading())

	assert.Equal(t, models.SeverityNormal, result.Overall)
}

func TestAnalyze_NilPredictor(t *testing.T) {
	c := NewClassifier(nil, zap.NewNop())

	result := c.Analyze(normalReading())

	assert.Equal(t, models.SeverityNormal, result.Overall)
}

// ============================================
// 说明文本的分档阈值
// ============================================

func TestExplanation_BloodPressureTiers(t *testing.T) {
	cases := []struct {
		systolic  int
		diastolic int
		expect    string
	}{
		{185, 110, "hypertensive crisis"},
		{150, 122, "hypertensive crisis"},
		{165, 95, "stage 2 hypertension"},
		{150, 102, "stage 2 hypertension"},
		{145, 88, "stage 1 hypertension"},
		{135, 92, "stage 1 hypertension"},
		{132, 80, "elevated"},
		{120, 86, "elevated"},
		{85, 70, "hypotensive"},
		{118, 55, "hypotensive"},
		{118, 76, "normal range"},
	}
	for _, c := range cases {
		comment := bloodPressureComment(c.systolic, c.diastolic)
		assert.Contains(t, comment, c.expect, "BP %d/%d", c.systolic, c.diastolic)
	}
}

func TestExplanation_HeartRateTiers(t *testing.T) {
	assert.Contains(t, heartRateComment(105), "tachycardia")
	assert.Contains(t, heartRateComment(52), "bradycardia")
	assert.Contains(t, heartRateComment(72), "normal range")
}

func TestExplanation_TemperatureTiers(t *testing.T) {
	assert.Contains(t, temperatureComment(38.4), "significant fever")
	assert.Contains(t, temperatureComment(37.5), "mild fever")
	assert.Contains(t, temperatureComment(35.2), "hypothermia")
	assert.Contains(t, temperatureComment(36.6), "normal range")
}

func TestExplanation_OxygenTiers(t *testing.T) {
	assert.Contains(t, oxygenComment(88), "critical hypoxemia")
	assert.Contains(t, oxygenComment(93), "low")
	assert.Contains(t, oxygenComment(98), "normal range")
}

func TestExplanation_ClosingRecommendation(t *testing.T) {
	assert.Contains(t, closingRecommendation(models.SeverityCritical), "immediate medical attention")
	assert.Contains(t, closingRecommendation(models.SeverityWarning), "Consider consulting your doctor")
	assert.Contains(t, closingRecommendation(models.SeverityNormal), "look good")
}

// ============================================
// 端到端：内置学习型分类器参与判定
// ============================================

func TestAnalyze_EndToEndWithDefaultPredictor(t *testing.T) {
	predictor, err := NewDefaultPredictor()
	require.NoError(t, err)
	c := NewClassifier(predictor, zap.NewNop())

	// 各单项都是 warning，但整体特征接近危急样本，模型投票升级为 critical
	reading := models.Reading{
		HeartRate:        120,
		Systolic:         160,
		Diastolic:        100,
		OxygenSaturation: 91,
		Temperature:      38.2,
	}

	result := c.Analyze(reading)

	assert.Equal(t, models.SeverityCritical, result.Overall)
	assert.Contains(t, result.Explanation, "stage 2 hypertension")
	assert.Contains(t, result.Explanation, "immediate medical attention")
}
