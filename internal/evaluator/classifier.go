package evaluator

import (
	"time"

	"vitaltrack/internal/models"

	"go.uber.org/zap"
)

// Classifier 健康状态分类器
// 规则评估 + 可选的学习型分类器投票，规则结果始终是安全判定的权威来源
type Classifier struct {
	predictor SeverityPredictor
	logger    *zap.Logger
}

// NewClassifier 创建分类器
// predictor 可以为 nil（此时只使用规则评估）
func NewClassifier(predictor SeverityPredictor, logger *zap.Logger) *Classifier {
	return &Classifier{
		predictor: predictor,
		logger:    logger,
	}
}

// Analyze 对一次 Reading 产出整体判定
// 1. 逐项指标评估
// 2. 取单项最严重级别 worstIndividual
// 3. worstIndividual == critical 时直接判定 critical，学习型分类器不参与
//    （单项危急读数不允许被统计分类器降级）
// 4. 否则取学习型分类器投票，失败按 normal 处理
// 5. 整体级别 = max(worstIndividual, 投票)
// 6. 生成说明文本
func (c *Classifier) Analyze(reading models.Reading) *models.AnalysisResult {
	assessments := make(map[string]models.MetricAssessment, len(models.AllMetrics))
	worst := models.SeverityNormal
	for _, metric := range models.AllMetrics {
		value, _ := reading.MetricValue(metric)
		severity := EvaluateMetric(metric, value)
		assessments[metric] = models.MetricAssessment{
			Metric:   metric,
			Value:    value,
			Severity: severity,
		}
		worst = models.MaxSeverity(worst, severity)
	}

	overall := worst
	if worst != models.SeverityCritical {
		overall = models.MaxSeverity(worst, c.modelVote(reading))
	}

	return &models.AnalysisResult{
		Overall:     overall,
		Assessments: assessments,
		Explanation: buildExplanation(reading, overall),
		AnalyzedAt:  time.Now(),
	}
}

// modelVote 获取学习型分类器的投票（尽力而为，失败按 normal 处理）
func (c *Classifier) modelVote(reading models.Reading) models.Severity {
	if c.predictor == nil {
		return models.SeverityNormal
	}

	vote, err := c.predictor.Predict(reading.FeatureVector())
	if err != nil {
		c.logger.Warn("Severity predictor failed, defaulting vote to normal",
			zap.Error(err),
		)
		return models.SeverityNormal
	}
	if !vote.Valid() {
		c.logger.Warn("Severity predictor returned unknown severity, defaulting vote to normal",
			zap.String("vote", string(vote)),
		)
		return models.SeverityNormal
	}
	return vote
}
