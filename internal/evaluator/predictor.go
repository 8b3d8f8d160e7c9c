package evaluator

import (
	"fmt"
	"math"

	"vitaltrack/internal/models"
)

// SeverityPredictor 学习型级别分类器接口
// 实现方对五维特征向量给出一个级别投票；任何合理的分类器都可以，
// 规则评估结果为 critical 时投票不参与判定
type SeverityPredictor interface {
	Predict(features [5]float64) (models.Severity, error)
}

// LabeledSample 带标签的训练样本
type LabeledSample struct {
	Features [5]float64
	Label    models.Severity
}

// featureScale 各特征的归一化除数（与 AllMetrics 顺序一致）
var featureScale = [5]float64{200, 250, 150, 100, 45}

// CentroidPredictor 最近质心分类器
// 启动时从固定标注语料训练一次，预测时取最近类别质心的标签
type CentroidPredictor struct {
	centroids map[models.Severity][5]float64
}

// NewCentroidPredictor 从训练样本构建分类器
func NewCentroidPredictor(samples []LabeledSample) (*CentroidPredictor, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples")
	}

	sums := make(map[models.Severity][5]float64)
	counts := make(map[models.Severity]int)
	for _, s := range samples {
		if !s.Label.Valid() {
			return nil, fmt.Errorf("invalid label: %s", s.Label)
		}
		sum := sums[s.Label]
		scaled := scaleFeatures(s.Features)
		for i := range sum {
			sum[i] += scaled[i]
		}
		sums[s.Label] = sum
		counts[s.Label]++
	}

	centroids := make(map[models.Severity][5]float64, len(sums))
	for label, sum := range sums {
		n := float64(counts[label])
		for i := range sum {
			sum[i] /= n
		}
		centroids[label] = sum
	}

	return &CentroidPredictor{centroids: centroids}, nil
}

// NewDefaultPredictor 用内置标注语料构建分类器
func NewDefaultPredictor() (*CentroidPredictor, error) {
	return NewCentroidPredictor(defaultTrainingSet)
}

// Predict 返回最近质心的标签
func (p *CentroidPredictor) Predict(features [5]float64) (models.Severity, error) {
	if len(p.centroids) == 0 {
		return models.SeverityNormal, fmt.Errorf("predictor not trained")
	}

	scaled := scaleFeatures(features)
	best := models.SeverityNormal
	bestDist := math.Inf(1)
	// 距离相同时取更严重的标签（级别全序决定平局）
	for _, label := range []models.Severity{models.SeverityNormal, models.SeverityWarning, models.SeverityCritical} {
		centroid, ok := p.centroids[label]
		if !ok {
			continue
		}
		dist := 0.0
		for i := range scaled {
			d := scaled[i] - centroid[i]
			dist += d * d
		}
		if dist < bestDist || (dist == bestDist && label.Rank() > best.Rank()) {
			bestDist = dist
			best = label
		}
	}
	return best, nil
}

func scaleFeatures(features [5]float64) [5]float64 {
	var scaled [5]float64
	for i := range features {
		scaled[i] = features[i] / featureScale[i]
	}
	return scaled
}

// defaultTrainingSet 内置标注语料
// 特征顺序：心率、收缩压、舒张压、血氧、体温
var defaultTrainingSet = []LabeledSample{
	// normal
	{Features: [5]float64{72, 118, 76, 98, 36.6}, Label: models.SeverityNormal},
	{Features: [5]float64{65, 110, 70, 97, 36.4}, Label: models.SeverityNormal},
	{Features: [5]float64{80, 122, 80, 99, 36.8}, Label: models.SeverityNormal},
	{Features: [5]float64{90, 125, 82, 96, 37.0}, Label: models.SeverityNormal},
	{Features: [5]float64{60, 105, 68, 98, 36.2}, Label: models.SeverityNormal},
	// warning
	{Features: [5]float64{108, 138, 88, 94, 37.6}, Label: models.SeverityWarning},
	{Features: [5]float64{112, 145, 92, 93, 37.8}, Label: models.SeverityWarning},
	{Features: [5]float64{55, 135, 86, 94, 37.5}, Label: models.SeverityWarning},
	{Features: [5]float64{115, 150, 95, 92, 38.0}, Label: models.SeverityWarning},
	{Features: [5]float64{105, 142, 90, 93, 37.9}, Label: models.SeverityWarning},
	// critical
	{Features: [5]float64{150, 185, 122, 88, 39.2}, Label: models.SeverityCritical},
	{Features: [5]float64{145, 190, 125, 87, 39.5}, Label: models.SeverityCritical},
	{Features: [5]float64{35, 65, 38, 85, 34.5}, Label: models.SeverityCritical},
	{Features: [5]float64{160, 195, 128, 86, 40.0}, Label: models.SeverityCritical},
	{Features: [5]float64{148, 182, 121, 89, 39.0}, Label: models.SeverityCritical},
}
