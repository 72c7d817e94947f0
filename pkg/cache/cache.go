package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL 상수 정의
const (
	TTLBoardView = 30 * time.Second // 보드 스냅샷 (자주 갱신)
	TTLDefault   = 5 * time.Minute  // 기본값
)

// 캐시 키 접두사
const (
	PrefixBoard = "board:"
)

// KeyBoardView holds the serialized stage partition of the board
const KeyBoardView = PrefixBoard + "view"

// KeyBoardGeneration counts board invalidations. A snapshot is only valid
// for the generation it was read under.
const KeyBoardGeneration = PrefixBoard + "gen"

// ErrMiss is returned by Get when the key is absent or Redis is not configured
var ErrMiss = errors.New("cache miss")

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	// 기본 캐시 연산
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// 보드 스냅샷 캐시
	GetBoardView(ctx context.Context, dest interface{}) error
	SetBoardView(ctx context.Context, data interface{}, ttl time.Duration) error
	InvalidateBoardView(ctx context.Context) error
	BoardGeneration(ctx context.Context) (int64, error)

	// 유틸리티
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

// NewService 새로운 캐시 서비스 생성. A nil client yields a cache that always misses.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable Redis 연결 가능 여부
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping Redis 연결 테스트
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get 캐시에서 값 조회
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set 캐시에 값 저장
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // Redis 없으면 무시
	}
	if ttl <= 0 {
		ttl = TTLDefault
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete 캐시 삭제
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// ========================================
// 보드 스냅샷 캐시
// ========================================

// GetBoardView 보드 스냅샷 조회
func (c *redisCache) GetBoardView(ctx context.Context, dest interface{}) error {
	return c.Get(ctx, KeyBoardView, dest)
}

// SetBoardView 보드 스냅샷 저장
func (c *redisCache) SetBoardView(ctx context.Context, data interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = TTLBoardView
	}
	return c.Set(ctx, KeyBoardView, data, ttl)
}

// InvalidateBoardView 보드 스냅샷 무효화 (generation 증가 후 삭제)
func (c *redisCache) InvalidateBoardView(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, KeyBoardGeneration)
		pipe.Del(ctx, KeyBoardView)
		return nil
	})
	return err
}

// BoardGeneration returns the current invalidation count (0 before the first one)
func (c *redisCache) BoardGeneration(ctx context.Context) (int64, error) {
	if c.client == nil {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, KeyBoardGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}
