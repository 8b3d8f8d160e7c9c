package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vitaltrack/internal/models"
)

func TestWebhookNotifier_PushAlert(t *testing.T) {
	var received webhookAlertPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, zap.NewNop())
	alert := &models.HealthAlert{
		AlertID:     "alert-1",
		Severity:    models.SeverityCritical,
		Message:     "Critical health status detected",
		TriggeredAt: time.Now(),
		TriggerData: models.AlertTriggerData{Source: "reading"},
	}

	err := notifier.PushAlert(context.Background(), "user-1", alert)
	require.NoError(t, err)

	assert.Equal(t, "user-1", received.UserID)
	assert.Equal(t, "alert-1", received.AlertID)
	assert.Equal(t, "critical", received.Severity)
	assert.Equal(t, "reading", received.TriggerData.Source)
}

func TestWebhookNotifier_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, zap.NewNop())
	err := notifier.PushAlert(context.Background(), "user-1", &models.HealthAlert{AlertID: "alert-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
