package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupSecureStore(t *testing.T) (*SecureStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cipher, err := NewCipherFromSecret("test-secret")
	require.NoError(t, err)

	return NewSecureStore(NewRedisKV(client), cipher, zap.NewNop()), mr
}

type testRecord struct {
	HeartRate int    `json:"heart_rate"`
	Note      string `json:"note"`
}

func TestSecureStore_RoundTrip(t *testing.T) {
	s, _ := setupSecureStore(t)
	ctx := context.Background()

	saved := testRecord{HeartRate: 120, Note: "after exercise"}
	require.NoError(t, s.SaveRecord(ctx, "user-1", RecordHealthHistory, saved))

	var loaded testRecord
	require.NoError(t, s.LoadRecord(ctx, "user-1", RecordHealthHistory, &loaded))
	assert.Equal(t, saved, loaded)
}

func TestSecureStore_Miss(t *testing.T) {
	s, _ := setupSecureStore(t)

	var loaded testRecord
	err := s.LoadRecord(context.Background(), "user-1", RecordAlerts, &loaded)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestSecureStore_EncryptedAtRest(t *testing.T) {
	// 落盘内容不出现明文
	s, mr := setupSecureStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, "user-1", RecordHealthHistory, testRecord{HeartRate: 120, Note: "plaintext-marker"}))

	raw, err := mr.Get("vitaltrack:user:user-1:health_history")
	require.NoError(t, err)
	assert.NotContains(t, raw, "plaintext-marker")
	assert.NotContains(t, raw, "heart_rate")
}

func TestSecureStore_TamperedRecord(t *testing.T) {
	// 损坏的数据必须上报 ErrDecrypt，不允许按空处理
	s, mr := setupSecureStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, "user-1", RecordHealthHistory, testRecord{HeartRate: 120}))
	mr.Set("vitaltrack:user:user-1:health_history", "bm90LXZhbGlkLWNpcGhlcnRleHQtYXQtYWxs")

	var loaded testRecord
	err := s.LoadRecord(ctx, "user-1", RecordHealthHistory, &loaded)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestSecureStore_UserScopedKeys(t *testing.T) {
	// 一个用户的数据在另一个用户的键空间下不可见
	s, _ := setupSecureStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, "user-1", RecordHealthHistory, testRecord{HeartRate: 120}))

	var loaded testRecord
	err := s.LoadRecord(ctx, "user-2", RecordHealthHistory, &loaded)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisKV_GetSet(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	kv := NewRedisKV(client)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	val, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}
