package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"vitaltrack/internal/models"

	"go.uber.org/zap"
)

// HealthArchiveRepository 健康数据归档Repository（PostgreSQL）
// 历史表只允许插入和按序读取（只追加契约），报警表只允许插入和已读标记
type HealthArchiveRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHealthArchiveRepository 创建归档Repository
func NewHealthArchiveRepository(db *sql.DB, logger *zap.Logger) *HealthArchiveRepository {
	return &HealthArchiveRepository{
		db:     db,
		logger: logger,
	}
}

// AppendHistoryEntry 追加一条历史记录
func (r *HealthArchiveRepository) AppendHistoryEntry(ctx context.Context, userID string, entry models.HistoryEntry) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	query := `
		INSERT INTO health_history (
			user_id, heart_rate, systolic_bp, diastolic_bp,
			oxygen_saturation, temperature, severity, measured_at, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		userID,
		entry.Reading.HeartRate,
		entry.Reading.Systolic,
		entry.Reading.Diastolic,
		entry.Reading.OxygenSaturation,
		entry.Reading.Temperature,
		string(entry.Severity),
		entry.Reading.MeasuredAt,
		entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// ListHistoryEntries 按插入顺序读取用户的全部历史记录
func (r *HealthArchiveRepository) ListHistoryEntries(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `
		SELECT heart_rate, systolic_bp, diastolic_bp,
		       oxygen_saturation, temperature, severity, measured_at, recorded_at
		FROM health_history
		WHERE user_id = $1
		ORDER BY recorded_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history entries: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var severity string
		if err := rows.Scan(
			&e.Reading.HeartRate,
			&e.Reading.Systolic,
			&e.Reading.Diastolic,
			&e.Reading.OxygenSaturation,
			&e.Reading.Temperature,
			&severity,
			&e.Reading.MeasuredAt,
			&e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Severity = models.Severity(severity)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history entries: %w", err)
	}

	return entries, nil
}

// CreateAlertEvent 写入一条报警事件
func (r *HealthArchiveRepository) CreateAlertEvent(ctx context.Context, userID string, alert *models.HealthAlert) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	triggerData, err := json.Marshal(alert.TriggerData)
	if err != nil {
		return fmt.Errorf("failed to marshal trigger data: %w", err)
	}

	query := `
		INSERT INTO alert_events (
			alert_id, user_id, severity, message, trigger_data, triggered_at, seen
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		alert.AlertID,
		userID,
		string(alert.Severity),
		alert.Message,
		string(triggerData),
		alert.TriggeredAt,
		alert.Seen,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert event: %w", err)
	}
	return nil
}

// MarkAlertSeen 标记报警事件为已读（Seen 是报警记录唯一允许的变更）
func (r *HealthArchiveRepository) MarkAlertSeen(ctx context.Context, userID, alertID string) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	query := `UPDATE alert_events SET seen = TRUE WHERE user_id = $1 AND alert_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, alertID)
	if err != nil {
		return fmt.Errorf("failed to update alert event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("alert event not found: %s", alertID)
	}
	return nil
}
