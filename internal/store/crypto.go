package store

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// ErrDecrypt 解密失败（数据损坏或密钥不匹配）
// 与普通的存储未命中不同，解密失败必须显式上报，不允许按空数据处理
var ErrDecrypt = errors.New("decrypt failed")

// Cipher AES-256-GCM 加解密器
// 健康数据落盘前加密、读出后解密的边界实现；
// 密钥轮换和按用户派生密钥暂未实现
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher 从 32 字节密钥创建加解密器
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// NewCipherFromSecret 从任意长度的口令派生密钥（SHA-256）
func NewCipherFromSecret(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("encryption secret is empty")
	}
	key := sha256.Sum256([]byte(secret))
	return NewCipher(key[:])
}

// Encrypt 加密明文，随机 nonce 前置在密文中
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt 解密，认证失败返回 ErrDecrypt
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < c.aead.NonceSize() {
		return nil, ErrDecrypt
	}
	nonce := ciphertext[:c.aead.NonceSize()]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext[c.aead.NonceSize():], nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
