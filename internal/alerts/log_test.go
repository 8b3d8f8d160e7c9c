package alerts

import (
	"fmt"
	"testing"

	"vitaltrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAlert(id string) models.HealthAlert {
	return models.HealthAlert{
		AlertID:  id,
		Severity: models.SeverityWarning,
		Message:  "test alert " + id,
	}
}

func TestLog_AddAndList(t *testing.T) {
	l := NewLog()
	l.Add(makeAlert("a"))
	l.Add(makeAlert("b"))

	got := l.List()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].AlertID)
	assert.Equal(t, "b", got[1].AlertID)
}

func TestLog_RetentionBound(t *testing.T) {
	// 超出上限时最旧的先淘汰，剩余条目保持原有相对顺序
	l := NewLog()
	for i := 0; i < 250; i++ {
		l.Add(makeAlert(fmt.Sprintf("alert-%03d", i)))
	}

	got := l.List()
	require.Len(t, got, MaxRetainedAlerts)
	assert.Equal(t, "alert-150", got[0].AlertID)
	assert.Equal(t, "alert-249", got[len(got)-1].AlertID)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].AlertID, got[i].AlertID)
	}
}

func TestLog_UnreadCountAndMarkSeen(t *testing.T) {
	l := NewLog()
	l.Add(makeAlert("a"))
	l.Add(makeAlert("b"))
	l.Add(makeAlert("c"))

	assert.Equal(t, 3, l.UnreadCount())

	require.NoError(t, l.MarkSeen("b"))
	assert.Equal(t, 2, l.UnreadCount())

	// Seen 是唯一允许的变更
	got := l.List()
	assert.False(t, got[0].Seen)
	assert.True(t, got[1].Seen)
	assert.Equal(t, "b", got[1].AlertID)
}

func TestLog_MarkSeenNotFound(t *testing.T) {
	l := NewLog()
	err := l.MarkSeen("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLog_ListReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Add(makeAlert("a"))

	got := l.List()
	got[0].Message = "mutated"

	assert.Equal(t, "test alert a", l.List()[0].Message)
}

func TestLog_RestoreTrimsToBound(t *testing.T) {
	entries := make([]models.HealthAlert, 120)
	for i := range entries {
		entries[i] = makeAlert(fmt.Sprintf("alert-%03d", i))
	}

	l := NewLog()
	l.Restore(entries)

	got := l.List()
	require.Len(t, got, MaxRetainedAlerts)
	assert.Equal(t, "alert-020", got[0].AlertID)
}

func TestLog_Reset(t *testing.T) {
	l := NewLog()
	l.Add(makeAlert("a"))
	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.List())
}
