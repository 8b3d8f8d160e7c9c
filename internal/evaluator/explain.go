package evaluator

import (
	"fmt"
	"strings"

	"vitaltrack/internal/models"
)

// buildExplanation 生成分析说明文本
// 各指标逐条评述，末尾附整体级别对应的建议语句。
// 措辞可以调整，但选择语句的分档阈值必须保持不变
func buildExplanation(reading models.Reading, overall models.Severity) string {
	var parts []string

	parts = append(parts, bloodPressureComment(reading.Systolic, reading.Diastolic))
	parts = append(parts, heartRateComment(reading.HeartRate))
	parts = append(parts, temperatureComment(reading.Temperature))
	parts = append(parts, oxygenComment(reading.OxygenSaturation))
	parts = append(parts, closingRecommendation(overall))

	return strings.Join(parts, " ")
}

// bloodPressureComment 血压评述（6 档）
func bloodPressureComment(systolic, diastolic int) string {
	switch {
	case systolic >= 180 || diastolic >= 120:
		return fmt.Sprintf("Blood pressure %d/%d mmHg indicates a hypertensive crisis.", systolic, diastolic)
	case systolic >= 160 || diastolic >= 100:
		return fmt.Sprintf("Blood pressure %d/%d mmHg indicates stage 2 hypertension.", systolic, diastolic)
	case systolic >= 140 || diastolic >= 90:
		return fmt.Sprintf("Blood pressure %d/%d mmHg indicates stage 1 hypertension.", systolic, diastolic)
	case systolic >= 130 || diastolic >= 85:
		return fmt.Sprintf("Blood pressure %d/%d mmHg is elevated.", systolic, diastolic)
	case systolic < 90 || diastolic < 60:
		return fmt.Sprintf("Blood pressure %d/%d mmHg is in the hypotensive range.", systolic, diastolic)
	default:
		return fmt.Sprintf("Blood pressure %d/%d mmHg is within the normal range.", systolic, diastolic)
	}
}

// heartRateComment 心率评述（3 档）
func heartRateComment(heartRate int) string {
	switch {
	case heartRate > 100:
		return fmt.Sprintf("Heart rate %d bpm is elevated (tachycardia).", heartRate)
	case heartRate < 60:
		return fmt.Sprintf("Heart rate %d bpm is low (bradycardia).", heartRate)
	default:
		return fmt.Sprintf("Heart rate %d bpm is within the normal range.", heartRate)
	}
}

// temperatureComment 体温评述（4 档）
func temperatureComment(temperature float64) string {
	switch {
	case temperature >= 38.3:
		return fmt.Sprintf("Temperature %.1f°C indicates a significant fever.", temperature)
	case temperature >= 37.3:
		return fmt.Sprintf("Temperature %.1f°C indicates a mild fever.", temperature)
	case temperature <= 35.5:
		return fmt.Sprintf("Temperature %.1f°C is in the hypothermia range.", temperature)
	default:
		return fmt.Sprintf("Temperature %.1f°C is within the normal range.", temperature)
	}
}

// oxygenComment 血氧评述（3 档）
func oxygenComment(oxygen float64) string {
	switch {
	case oxygen < 90:
		return fmt.Sprintf("Oxygen saturation %.0f%% indicates critical hypoxemia.", oxygen)
	case oxygen < 95:
		return fmt.Sprintf("Oxygen saturation %.0f%% is low.", oxygen)
	default:
		return fmt.Sprintf("Oxygen saturation %.0f%% is within the normal range.", oxygen)
	}
}

// closingRecommendation 整体级别对应的建议语句
func closingRecommendation(overall models.Severity) string {
	switch overall {
	case models.SeverityCritical:
		return "Your readings require immediate medical attention. Please contact your doctor or emergency services now."
	case models.SeverityWarning:
		return "Some readings are outside the normal range. Consider consulting your doctor soon."
	default:
		return "All readings look good. Keep up your healthy habits."
	}
}
