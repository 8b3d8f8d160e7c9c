package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vitaltrack/internal/auth"
	"vitaltrack/internal/config"
	"vitaltrack/internal/consumer"
	"vitaltrack/internal/evaluator"
	"vitaltrack/internal/repository"
	"vitaltrack/internal/service"
	"vitaltrack/internal/store"
	"vitaltrack/pkg/database"
	"vitaltrack/pkg/logger"
	mqttcommon "vitaltrack/pkg/mqtt"
	rediscommon "vitaltrack/pkg/redis"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "vitaltrack-monitor")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	// 3. 获取用户身份（单设备单用户）
	userID := os.Getenv("USER_ID")
	if userID == "" {
		log.Fatal("USER_ID environment variable is required")
	}

	if cfg.Monitor.EncryptionSecret == "" {
		log.Fatal("ENCRYPTION_SECRET environment variable is required")
	}

	// 4. 连接 Redis（存储协作方）
	redisClient := rediscommon.NewRedisClient(&cfg.Redis)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := rediscommon.Ping(ctx, redisClient); err != nil {
		log.Fatal("Failed to ping redis", zap.Error(err))
	}
	defer rediscommon.Close(redisClient)

	// 5. 可选的 PostgreSQL 归档
	var db *sql.DB
	var archive *repository.HealthArchiveRepository
	if cfg.Monitor.ArchiveEnabled {
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer database.Close(db)
		archive = repository.NewHealthArchiveRepository(db, log)
	}

	// 6. 构建加密存储层
	cipher, err := store.NewCipherFromSecret(cfg.Monitor.EncryptionSecret)
	if err != nil {
		log.Fatal("Failed to build cipher", zap.Error(err))
	}
	secureStore := store.NewSecureStore(store.NewRedisKV(redisClient), cipher, log)

	// 7. 构建分类器（学习型分类器训练失败时退化为纯规则评估）
	var predictor evaluator.SeverityPredictor
	if p, err := evaluator.NewDefaultPredictor(); err != nil {
		log.Warn("Failed to train severity predictor, rule-based only", zap.Error(err))
	} else {
		predictor = p
	}
	classifier := evaluator.NewClassifier(predictor, log)

	// 8. 可选的报警 Webhook 推送
	var notifier service.AlertNotifier
	if cfg.Monitor.WebhookURL != "" {
		notifier = service.NewWebhookNotifier(cfg.Monitor.WebhookURL, log)
	}

	// 9. 构建监测会话并加载持久化状态
	session := auth.NewSession()
	session.Login(userID)
	monitoring := service.NewMonitoringSession(session, classifier, secureStore, archive, notifier, log)
	if err := monitoring.LoadPersistedState(ctx); err != nil {
		log.Fatal("Failed to load persisted state", zap.Error(err))
	}

	// 10. 连接 MQTT 并启动读数消费者
	mqttClient, err := mqttcommon.NewClient(&cfg.MQTT)
	if err != nil {
		log.Fatal("Failed to connect to MQTT broker", zap.Error(err))
	}
	defer mqttClient.Disconnect()

	readingConsumer := consumer.NewReadingConsumer(cfg, mqttClient, monitoring, log)

	serviceErrChan := make(chan error, 1)
	go func() {
		if err := readingConsumer.Start(ctx); err != nil {
			serviceErrChan <- err
		}
	}()

	log.Info("Monitoring service started",
		zap.String("user_id", userID),
		zap.String("topic", cfg.Monitor.ReadingsTopic),
	)

	// 11. 等待信号（优雅关闭）
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down",
			zap.String("signal", sig.String()),
		)
		cancel()
	case err := <-serviceErrChan:
		log.Fatal("Service error",
			zap.Error(err),
		)
	}

	if err := readingConsumer.Stop(context.Background()); err != nil {
		log.Error("Failed to stop reading consumer", zap.Error(err))
	}

	log.Info("Monitoring service stopped")
}
