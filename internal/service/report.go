package service

import (
	"bytes"
	"fmt"

	"vitaltrack/internal/models"

	"github.com/xuri/excelize/v2"
)

// HistoryReportHeader 历史记录工作表表头
var HistoryReportHeader = []string{
	"Recorded At",
	"Heart Rate (bpm)",
	"Systolic BP (mmHg)",
	"Diastolic BP (mmHg)",
	"Oxygen Saturation (%)",
	"Temperature (°C)",
	"Status",
}

// AlertReportHeader 报警工作表表头
var AlertReportHeader = []string{
	"Triggered At",
	"Severity",
	"Message",
	"Seen",
}

// GenerateHistoryReport 生成健康历史 Excel 报告（供分享给医生）
// 包含两个工作表：历史记录和报警
func GenerateHistoryReport(entries []models.HistoryEntry, alertList []models.HealthAlert) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	historySheet := "Health History"
	index, err := f.NewSheet(historySheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range HistoryReportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(historySheet, cell, header)
		f.SetCellStyle(historySheet, cell, cell, headerStyle)
	}

	for row, entry := range entries {
		values := []interface{}{
			entry.RecordedAt.Format("2006-01-02 15:04:05"),
			entry.Reading.HeartRate,
			entry.Reading.Systolic,
			entry.Reading.Diastolic,
			entry.Reading.OxygenSaturation,
			entry.Reading.Temperature,
			string(entry.Severity),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(historySheet, cell, value)
		}
	}

	alertSheet := "Alerts"
	if _, err := f.NewSheet(alertSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	for col, header := range AlertReportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(alertSheet, cell, header)
		f.SetCellStyle(alertSheet, cell, cell, headerStyle)
	}

	for row, alert := range alertList {
		values := []interface{}{
			alert.TriggeredAt.Format("2006-01-02 15:04:05"),
			string(alert.Severity),
			alert.Message,
			alert.Seen,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(alertSheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}

	return buf.Bytes(), nil
}
