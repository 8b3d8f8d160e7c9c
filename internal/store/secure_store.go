package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// 持久化记录名称（按用户隔离的键空间内使用）
const (
	RecordHealthHistory    = "health_history"
	RecordAlerts           = "alerts"
	RecordMonitoringConfig = "monitoring_config"
)

// SecureStore 加密持久化层
// 负责记录的序列化（JSON）、Set 前加密、Get 后解密；
// 键按认证用户身份隔离，一个用户的数据对其他用户的键不可见
type SecureStore struct {
	kv     KV
	cipher *Cipher
	logger *zap.Logger
}

// NewSecureStore 创建加密持久化层
func NewSecureStore(kv KV, cipher *Cipher, logger *zap.Logger) *SecureStore {
	return &SecureStore{
		kv:     kv,
		cipher: cipher,
		logger: logger,
	}
}

// recordKey 构建按用户隔离的存储键
func recordKey(userID, record string) string {
	return fmt.Sprintf("vitaltrack:user:%s:%s", userID, record)
}

// SaveRecord 序列化、加密并写入一条记录
func (s *SecureStore) SaveRecord(ctx context.Context, userID, record string, value interface{}) error {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %w", record, err)
	}

	ciphertext, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		s.logger.Error("Failed to encrypt record",
			zap.String("record", record),
			zap.Error(err),
		)
		return fmt.Errorf("failed to encrypt record %s: %w", record, err)
	}

	encoded := base64.StdEncoding.EncodeToString(ciphertext)
	if err := s.kv.Set(ctx, recordKey(userID, record), encoded, 0); err != nil {
		return fmt.Errorf("failed to store record %s: %w", record, err)
	}
	return nil
}

// LoadRecord 读取、解密并反序列化一条记录
// 键不存在返回 ErrMiss；解密失败返回 ErrDecrypt（记录错误日志并上报，
// 损坏的健康数据不允许静默按空处理）
func (s *SecureStore) LoadRecord(ctx context.Context, userID, record string, dest interface{}) error {
	encoded, err := s.kv.Get(ctx, recordKey(userID, record))
	if err != nil {
		if err == ErrMiss {
			return ErrMiss
		}
		return fmt.Errorf("failed to load record %s: %w", record, err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		s.logger.Error("Stored record is not valid base64",
			zap.String("record", record),
			zap.Error(err),
		)
		return ErrDecrypt
	}

	plaintext, err := s.cipher.Decrypt(ciphertext)
	if err != nil {
		s.logger.Error("Failed to decrypt record",
			zap.String("record", record),
			zap.Error(err),
		)
		return err
	}

	if err := json.Unmarshal(plaintext, dest); err != nil {
		return fmt.Errorf("failed to unmarshal record %s: %w", record, err)
	}
	return nil
}
