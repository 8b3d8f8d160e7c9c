package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"REDIS_ADDR", "REDIS_PASSWORD",
		"MQTT_BROKER", "MQTT_CLIENT_ID", "MQTT_USERNAME", "MQTT_PASSWORD",
		"ENCRYPTION_SECRET", "READINGS_TOPIC", "ALERT_WEBHOOK_URL", "ARCHIVE_ENABLED",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "vitaltrack", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, "vitaltrack-monitor", cfg.MQTT.ClientID)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)

	assert.Empty(t, cfg.Monitor.EncryptionSecret)
	assert.Equal(t, "vitaltrack/readings", cfg.Monitor.ReadingsTopic)
	assert.Empty(t, cfg.Monitor.WebhookURL)
	assert.False(t, cfg.Monitor.ArchiveEnabled)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "vitaltrack_staging")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("MQTT_BROKER", "tcp://mqtt.internal:1883")
	t.Setenv("ENCRYPTION_SECRET", "staging-secret")
	t.Setenv("READINGS_TOPIC", "staging/readings")
	t.Setenv("ALERT_WEBHOOK_URL", "https://hooks.example.com/alerts")
	t.Setenv("ARCHIVE_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "vitaltrack_staging", cfg.Database.Database)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "tcp://mqtt.internal:1883", cfg.MQTT.Broker)
	assert.Equal(t, "staging-secret", cfg.Monitor.EncryptionSecret)
	assert.Equal(t, "staging/readings", cfg.Monitor.ReadingsTopic)
	assert.Equal(t, "https://hooks.example.com/alerts", cfg.Monitor.WebhookURL)
	assert.True(t, cfg.Monitor.ArchiveEnabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}
