package auth

import (
	"context"
	"fmt"
	"strings"

	"vitaltrack/internal/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials 账号不存在或密码不匹配（对外不区分两种情况）
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// CredentialStore 账号凭证存储
// 密码以 bcrypt 哈希保存在 KV 中（哈希本身无需再加密）
type CredentialStore struct {
	kv     store.KV
	logger *zap.Logger
}

// NewCredentialStore 创建凭证存储
func NewCredentialStore(kv store.KV, logger *zap.Logger) *CredentialStore {
	return &CredentialStore{
		kv:     kv,
		logger: logger,
	}
}

func credentialKey(account string) string {
	return fmt.Sprintf("vitaltrack:auth:%s", strings.ToLower(strings.TrimSpace(account)))
}

// SetPassword 设置账号密码（注册或重置）
func (c *CredentialStore) SetPassword(ctx context.Context, account, password string) error {
	account = strings.TrimSpace(account)
	if account == "" {
		return fmt.Errorf("account is required")
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := c.kv.Set(ctx, credentialKey(account), string(hash), 0); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	return nil
}

// Verify 校验账号密码
func (c *CredentialStore) Verify(ctx context.Context, account, password string) error {
	hash, err := c.kv.Get(ctx, credentialKey(account))
	if err != nil {
		if err == store.ErrMiss {
			c.logger.Warn("Login failed: unknown account",
				zap.String("account", account),
			)
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		c.logger.Warn("Login failed: password mismatch",
			zap.String("account", account),
		)
		return ErrInvalidCredentials
	}
	return nil
}
