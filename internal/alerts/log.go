package alerts

import (
	"fmt"
	"sync"

	"vitaltrack/internal/models"
)

// MaxRetainedAlerts 报警日志保留上限（存储卫生策略，超出时最旧的先淘汰）
const MaxRetainedAlerts = 100

// Log 有界报警日志
// 报警创建后只允许翻转 Seen 标志，不允许删除或修改其他字段；
// 淘汰只丢弃最旧条目，不改变剩余条目的相对顺序
type Log struct {
	mu      sync.Mutex
	entries []models.HealthAlert
}

// NewLog 创建报警日志
func NewLog() *Log {
	return &Log{}
}

// Add 追加一条报警，超出上限时淘汰最旧条目
func (l *Log) Add(alert models.HealthAlert) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, alert)
	if len(l.entries) > MaxRetainedAlerts {
		l.entries = l.entries[len(l.entries)-MaxRetainedAlerts:]
	}
}

// List 返回全部报警（插入顺序的拷贝）
func (l *Log) List() []models.HealthAlert {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.HealthAlert, len(l.entries))
	copy(out, l.entries)
	return out
}

// UnreadCount 统计未读报警数（按需计算，不缓存）
func (l *Log) UnreadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for i := range l.entries {
		if !l.entries[i].Seen {
			count++
		}
	}
	return count
}

// MarkSeen 将指定报警标记为已读
func (l *Log) MarkSeen(alertID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].AlertID == alertID {
			l.entries[i].Seen = true
			return nil
		}
	}
	return fmt.Errorf("alert not found: %s", alertID)
}

// Len 当前报警条数
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Restore 用持久化快照重建日志（超出上限时只保留最新的部分）
func (l *Log) Restore(entries []models.HealthAlert) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(entries) > MaxRetainedAlerts {
		entries = entries[len(entries)-MaxRetainedAlerts:]
	}
	l.entries = make([]models.HealthAlert, len(entries))
	copy(l.entries, entries)
}

// Reset 清空日志（用户登出时调用）
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
