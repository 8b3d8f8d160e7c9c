package auth

import (
	"errors"
	"sync"
)

// ErrNotAuthenticated 未认证访问（核心读写操作前必须先通过认证检查）
var ErrNotAuthenticated = errors.New("not authenticated")

// Authenticator 认证协作方接口
type Authenticator interface {
	IsAuthenticated() bool
	CurrentUserID() (string, bool)
}

// Session 本地认证会话（单设备单用户）
type Session struct {
	mu     sync.RWMutex
	userID string
}

// NewSession 创建未登录的会话
func NewSession() *Session {
	return &Session{}
}

// Login 以指定用户身份登录
func (s *Session) Login(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// Logout 登出
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
}

// IsAuthenticated 是否已认证
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID != ""
}

// CurrentUserID 当前用户 ID
func (s *Session) CurrentUserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userID == "" {
		return "", false
	}
	return s.userID, true
}
