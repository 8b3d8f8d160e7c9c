package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vitaltrack/internal/config"
	"vitaltrack/internal/models"
	"vitaltrack/internal/service"
	mqttcommon "vitaltrack/pkg/mqtt"

	"go.uber.org/zap"
)

// ReadingMessage 设备桥接端发来的读数消息
type ReadingMessage struct {
	HeartRate        int     `json:"heart_rate"`
	Systolic         int     `json:"systolic_bp"`
	Diastolic        int     `json:"diastolic_bp"`
	OxygenSaturation float64 `json:"oxygen_saturation"`
	Temperature      float64 `json:"temperature"`
	MeasuredAt       int64   `json:"measured_at"` // Unix 秒，0 表示接收时刻
}

// ReadingConsumer MQTT读数消费者
// 订阅设备读数主题，把解析出的读数送入监测会话管线
type ReadingConsumer struct {
	config     *config.Config
	mqttClient *mqttcommon.Client
	session    *service.MonitoringSession
	logger     *zap.Logger
}

// NewReadingConsumer 创建MQTT读数消费者
func NewReadingConsumer(
	cfg *config.Config,
	mqttClient *mqttcommon.Client,
	session *service.MonitoringSession,
	logger *zap.Logger,
) *ReadingConsumer {
	return &ReadingConsumer{
		config:     cfg,
		mqttClient: mqttClient,
		session:    session,
		logger:     logger,
	}
}

// Start 启动消费者
func (c *ReadingConsumer) Start(ctx context.Context) error {
	topic := c.config.Monitor.ReadingsTopic
	if topic == "" {
		return fmt.Errorf("readings MQTT topic not configured")
	}

	if err := c.mqttClient.Subscribe(topic, c.config.MQTT.QoS, c.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to readings topic: %w", err)
	}

	c.logger.Info("Reading consumer started",
		zap.String("topic", topic),
	)

	// 等待上下文取消
	<-ctx.Done()
	return nil
}

// Stop 停止消费者
func (c *ReadingConsumer) Stop(ctx context.Context) error {
	topic := c.config.Monitor.ReadingsTopic
	if topic != "" {
		if err := c.mqttClient.Unsubscribe(topic); err != nil {
			c.logger.Error("Failed to unsubscribe", zap.Error(err))
		}
	}

	c.logger.Info("Reading consumer stopped")
	return nil
}

// handleMessage 处理MQTT消息
// 消息格式：读数消息数组（设备桥接端批量上报）
func (c *ReadingConsumer) handleMessage(topic string, payload []byte) error {
	c.logger.Debug("Received MQTT message",
		zap.String("topic", topic),
		zap.Int("payload_size", len(payload)),
	)

	var messages []ReadingMessage
	if err := json.Unmarshal(payload, &messages); err != nil {
		return fmt.Errorf("failed to unmarshal reading messages: %w", err)
	}

	ctx := context.Background()
	for _, msg := range messages {
		reading := models.Reading{
			HeartRate:        msg.HeartRate,
			Systolic:         msg.Systolic,
			Diastolic:        msg.Diastolic,
			OxygenSaturation: msg.OxygenSaturation,
			Temperature:      msg.Temperature,
		}
		if msg.MeasuredAt > 0 {
			reading.MeasuredAt = time.Unix(msg.MeasuredAt, 0)
		}

		result, err := c.session.SaveHealthData(ctx, reading)
		if err != nil {
			c.logger.Error("Failed to process device reading",
				zap.Error(err),
			)
			// 继续处理后续读数，不中断
			continue
		}

		c.logger.Debug("Device reading processed",
			zap.String("overall", string(result.Overall)),
		)
	}

	return nil
}
