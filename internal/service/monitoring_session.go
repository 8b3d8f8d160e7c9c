package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vitaltrack/internal/alerts"
	"vitaltrack/internal/auth"
	"vitaltrack/internal/evaluator"
	"vitaltrack/internal/ledger"
	"vitaltrack/internal/models"
	"vitaltrack/internal/repository"
	"vitaltrack/internal/store"

	"go.uber.org/zap"
)

// AlertNotifier 报警外推接口（为空实现时不推送）
type AlertNotifier interface {
	PushAlert(ctx context.Context, userID string, alert *models.HealthAlert) error
}

// MonitoringSession 监测会话（每个认证用户一个，登录时构建、登出时清空）
// 分类管线同步执行；账本和报警日志自带锁，MQTT 回调并发投递也安全
type MonitoringSession struct {
	auth        auth.Authenticator
	classifier  *evaluator.Classifier
	policy      *alerts.Policy
	alertLog    *alerts.Log
	history     *ledger.HistoryLedger
	secureStore *store.SecureStore
	archive     *repository.HealthArchiveRepository // 可选
	notifier    AlertNotifier                       // 可选
	logger      *zap.Logger

	mu                 sync.Mutex
	monitoringConfig   models.MonitoringConfig
	lastMetricSeverity map[string]models.Severity
}

// NewMonitoringSession 创建监测会话
// archive 和 notifier 允许为 nil
func NewMonitoringSession(
	authenticator auth.Authenticator,
	classifier *evaluator.Classifier,
	secureStore *store.SecureStore,
	archive *repository.HealthArchiveRepository,
	notifier AlertNotifier,
	logger *zap.Logger,
) *MonitoringSession {
	return &MonitoringSession{
		auth:               authenticator,
		classifier:         classifier,
		policy:             alerts.NewPolicy(),
		alertLog:           alerts.NewLog(),
		history:            ledger.NewHistoryLedger(),
		secureStore:        secureStore,
		archive:            archive,
		notifier:           notifier,
		logger:             logger,
		monitoringConfig:   models.DefaultMonitoringConfig(),
		lastMetricSeverity: make(map[string]models.Severity),
	}
}

// requireUser 认证检查（写路径失败即拒绝）
func (s *MonitoringSession) requireUser() (string, error) {
	userID, ok := s.auth.CurrentUserID()
	if !ok {
		return "", auth.ErrNotAuthenticated
	}
	return userID, nil
}

// AnalyzeReading 对一次读数做分类（无副作用，不要求认证）
func (s *MonitoringSession) AnalyzeReading(reading models.Reading) *models.AnalysisResult {
	return s.classifier.Analyze(reading)
}

// SaveHealthData 完整管线：分类 → 报警判定 → 追加账本 → 持久化
// 未认证调用返回 ErrNotAuthenticated，不追加任何数据。
// 持久化失败向上报告，内存状态保持有效（本次会话内仍是权威数据）
func (s *MonitoringSession) SaveHealthData(ctx context.Context, reading models.Reading) (*models.AnalysisResult, error) {
	userID, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	if reading.MeasuredAt.IsZero() {
		reading.MeasuredAt = time.Now()
	}

	result := s.classifier.Analyze(reading)

	s.mu.Lock()
	cfg := s.monitoringConfig
	s.mu.Unlock()

	// 整体分析路径：每次分析超过阈值产生恰好一条聚合报警
	if s.policy.ShouldAlertOnReading(cfg, result.Overall) {
		alert := s.policy.BuildReadingAlert(cfg, reading, result)
		s.raiseAlert(ctx, userID, alert)
	}

	entry := models.HistoryEntry{
		Reading:    reading,
		Severity:   result.Overall,
		RecordedAt: time.Now(),
	}
	s.history.Append(entry)

	if s.archive != nil {
		if err := s.archive.AppendHistoryEntry(ctx, userID, entry); err != nil {
			s.logger.Error("Failed to archive history entry",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			// 归档失败不影响会话状态
		}
	}

	if err := s.persist(ctx, userID); err != nil {
		return result, fmt.Errorf("failed to persist health data: %w", err)
	}
	return result, nil
}

// UpdateLiveMetric 单指标实时路径
// 只在级别相对上次发生升高（含 normal → warning/critical）时报警；
// 完全相同的级别重复出现不再报警
func (s *MonitoringSession) UpdateLiveMetric(ctx context.Context, metric string, value float64) (models.Severity, error) {
	userID, err := s.requireUser()
	if err != nil {
		return models.SeverityNormal, err
	}

	severity := evaluator.EvaluateMetric(metric, value)

	s.mu.Lock()
	cfg := s.monitoringConfig
	previous, seen := s.lastMetricSeverity[metric]
	if !seen {
		previous = models.SeverityNormal
	}
	s.lastMetricSeverity[metric] = severity
	s.mu.Unlock()

	if s.policy.ShouldAlertOnMetric(cfg, metric, previous, severity) {
		alert := s.policy.BuildMetricAlert(metric, value, severity)
		s.raiseAlert(ctx, userID, alert)
	}

	return severity, nil
}

// raiseAlert 记录并外推一条报警（归档和推送都是尽力而为）
func (s *MonitoringSession) raiseAlert(ctx context.Context, userID string, alert *models.HealthAlert) {
	s.alertLog.Add(*alert)

	s.logger.Info("Health alert raised",
		zap.String("user_id", userID),
		zap.String("alert_id", alert.AlertID),
		zap.String("severity", string(alert.Severity)),
	)

	if s.archive != nil {
		if err := s.archive.CreateAlertEvent(ctx, userID, alert); err != nil {
			s.logger.Error("Failed to archive alert event",
				zap.String("alert_id", alert.AlertID),
				zap.Error(err),
			)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.PushAlert(ctx, userID, alert); err != nil {
			s.logger.Error("Failed to push alert",
				zap.String("alert_id", alert.AlertID),
				zap.Error(err),
			)
		}
	}
}

// persist 把账本、报警日志和监测配置写入加密存储
func (s *MonitoringSession) persist(ctx context.Context, userID string) error {
	if err := s.secureStore.SaveRecord(ctx, userID, store.RecordHealthHistory, s.history.Entries()); err != nil {
		return err
	}
	if err := s.secureStore.SaveRecord(ctx, userID, store.RecordAlerts, s.alertLog.List()); err != nil {
		return err
	}

	s.mu.Lock()
	cfg := s.monitoringConfig
	s.mu.Unlock()
	return s.secureStore.SaveRecord(ctx, userID, store.RecordMonitoringConfig, cfg)
}

// GetHealthHistory 读取历史记录（插入顺序）
// 未认证时返回空集合而不是错误，避免泄露上一个用户的数据
func (s *MonitoringSession) GetHealthHistory(ctx context.Context) []models.HistoryEntry {
	if !s.auth.IsAuthenticated() {
		return nil
	}
	return s.history.Entries()
}

// GetAlerts 读取报警列表（未认证时返回空集合）
func (s *MonitoringSession) GetAlerts(ctx context.Context) []models.HealthAlert {
	if !s.auth.IsAuthenticated() {
		return nil
	}
	return s.alertLog.List()
}

// UnreadAlertCount 未读报警数（未认证时为 0）
func (s *MonitoringSession) UnreadAlertCount() int {
	if !s.auth.IsAuthenticated() {
		return 0
	}
	return s.alertLog.UnreadCount()
}

// MarkAlertSeen 标记报警为已读
func (s *MonitoringSession) MarkAlertSeen(ctx context.Context, alertID string) error {
	userID, err := s.requireUser()
	if err != nil {
		return err
	}

	if err := s.alertLog.MarkSeen(alertID); err != nil {
		return err
	}
	if s.archive != nil {
		if err := s.archive.MarkAlertSeen(ctx, userID, alertID); err != nil {
			s.logger.Warn("Failed to mark archived alert seen",
				zap.String("alert_id", alertID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// MonitoringConfig 当前监测配置
func (s *MonitoringSession) MonitoringConfig() models.MonitoringConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.monitoringConfig
}

// UpdateMonitoringConfig 更新并按用户持久化监测配置
func (s *MonitoringSession) UpdateMonitoringConfig(ctx context.Context, cfg models.MonitoringConfig) error {
	userID, err := s.requireUser()
	if err != nil {
		return err
	}
	if !cfg.AlertThreshold.Valid() {
		return fmt.Errorf("invalid alert threshold: %s", cfg.AlertThreshold)
	}

	s.mu.Lock()
	s.monitoringConfig = cfg
	s.mu.Unlock()

	if err := s.secureStore.SaveRecord(ctx, userID, store.RecordMonitoringConfig, cfg); err != nil {
		return fmt.Errorf("failed to persist monitoring config: %w", err)
	}
	return nil
}

// LoadPersistedState 会话启动时重新加载持久化状态
// 记录不存在按全新会话处理；解密失败向上报告（损坏的健康数据不允许
// 静默按空处理）
func (s *MonitoringSession) LoadPersistedState(ctx context.Context) error {
	userID, err := s.requireUser()
	if err != nil {
		return err
	}

	var cfg models.MonitoringConfig
	switch err := s.secureStore.LoadRecord(ctx, userID, store.RecordMonitoringConfig, &cfg); err {
	case nil:
		s.mu.Lock()
		s.monitoringConfig = cfg
		s.mu.Unlock()
	case store.ErrMiss:
		// 保持默认配置
	default:
		return err
	}

	var entries []models.HistoryEntry
	switch err := s.secureStore.LoadRecord(ctx, userID, store.RecordHealthHistory, &entries); err {
	case nil:
		s.history.Restore(entries)
	case store.ErrMiss:
	default:
		return err
	}

	var alertEntries []models.HealthAlert
	switch err := s.secureStore.LoadRecord(ctx, userID, store.RecordAlerts, &alertEntries); err {
	case nil:
		s.alertLog.Restore(alertEntries)
	case store.ErrMiss:
	default:
		return err
	}

	return nil
}

// Reset 清空会话状态（用户登出时调用）
func (s *MonitoringSession) Reset() {
	s.history.Reset()
	s.alertLog.Reset()

	s.mu.Lock()
	s.monitoringConfig = models.DefaultMonitoringConfig()
	s.lastMetricSeverity = make(map[string]models.Severity)
	s.mu.Unlock()
}
