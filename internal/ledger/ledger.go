package ledger

import (
	"sync"

	"vitaltrack/internal/models"
)

// HistoryLedger 只追加的历史账本
// 记录 (Reading, 整体级别, 记录时间)，公开接口不提供对已追加条目的
// 修改或删除；增长无上限，需要有界存储的调用方自行做外部保留策略
type HistoryLedger struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
}

// NewHistoryLedger 创建历史账本
func NewHistoryLedger() *HistoryLedger {
	return &HistoryLedger{}
}

// Append 追加一条记录
func (l *HistoryLedger) Append(entry models.HistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries 返回全部记录（插入顺序的拷贝）
// 前端"最近在前"的展示由调用方自行反转，账本本身不保证
func (l *HistoryLedger) Entries() []models.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len 当前记录条数
func (l *HistoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Restore 用持久化快照重建账本
func (l *HistoryLedger) Restore(entries []models.HistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make([]models.HistoryEntry, len(entries))
	copy(l.entries, entries)
}

// Reset 清空账本（用户登出时调用）
func (l *HistoryLedger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
