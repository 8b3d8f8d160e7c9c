package service

import (
	"context"
	"fmt"
	"time"

	"vitaltrack/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WebhookNotifier 报警 Webhook 推送器
// 把新产生的报警推送给护理端的 Webhook；推送失败只记录日志，
// 不阻塞分类管线
type WebhookNotifier struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// webhookAlertPayload Webhook 请求体
type webhookAlertPayload struct {
	UserID      string                  `json:"user_id"`
	AlertID     string                  `json:"alert_id"`
	Severity    string                  `json:"severity"`
	Message     string                  `json:"message"`
	TriggeredAt time.Time               `json:"triggered_at"`
	TriggerData models.AlertTriggerData `json:"trigger_data"`
}

// NewWebhookNotifier 创建 Webhook 推送器
func NewWebhookNotifier(webhookURL string, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetBaseURL(webhookURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		logger:     logger,
	}
}

// PushAlert 推送一条报警
func (n *WebhookNotifier) PushAlert(ctx context.Context, userID string, alert *models.HealthAlert) error {
	payload := webhookAlertPayload{
		UserID:      userID,
		AlertID:     alert.AlertID,
		Severity:    string(alert.Severity),
		Message:     alert.Message,
		TriggeredAt: alert.TriggeredAt,
		TriggerData: alert.TriggerData,
	}

	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post("")

	if err != nil {
		return fmt.Errorf("failed to push alert webhook: %w", err)
	}
	if resp.IsError() {
		n.logger.Error("Alert webhook returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("alert_id", alert.AlertID),
		)
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode())
	}

	n.logger.Debug("Alert pushed to webhook",
		zap.String("alert_id", alert.AlertID),
		zap.Int("status_code", resp.StatusCode()),
	)
	return nil
}
