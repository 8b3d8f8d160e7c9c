package config

import (
	"os"

	"vitaltrack/pkg/config"
)

// Config 监测服务配置
type Config struct {
	Database config.DatabaseConfig
	Redis    config.RedisConfig
	MQTT     config.MQTTConfig

	// 监测服务特定配置
	Monitor struct {
		// 健康数据加密口令（密钥经 SHA-256 派生；轮换机制待定）
		EncryptionSecret string

		// 设备读数接入的 MQTT 主题
		ReadingsTopic string

		// 报警推送 Webhook（为空则不推送）
		WebhookURL string

		// 是否启用 PostgreSQL 历史归档
		ArchiveEnabled bool
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	// 从环境变量加载（带默认值）
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = 5432
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "vitaltrack")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "vitaltrack-monitor")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.QoS = 1

	cfg.Monitor.EncryptionSecret = getEnv("ENCRYPTION_SECRET", "")
	cfg.Monitor.ReadingsTopic = getEnv("READINGS_TOPIC", "vitaltrack/readings")
	cfg.Monitor.WebhookURL = getEnv("ALERT_WEBHOOK_URL", "")
	cfg.Monitor.ArchiveEnabled = getEnv("ARCHIVE_ENABLED", "false") == "true"

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
