package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/models"

	"github.com/redis/go-redis/v9"
)

// Store persists carts by id. Get returns an empty cart for unknown ids.
type Store interface {
	Get(ctx context.Context, id string) (*models.Cart, error)
	Save(ctx context.Context, c *models.Cart) error
	Delete(ctx context.Context, id string) error
}

const keyPrefix = "cart:"

// RedisStore keeps carts as JSON values with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Store backed by client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Cart, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var c models.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	c.ID = id
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, c *models.Cart) error {
	c.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+c.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// MemoryStore keeps carts in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string]models.Cart{}}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[id]
	if !ok {
		return New(id), nil
	}
	c.Items = append([]models.CartItem{}, c.Items...)
	return &c, nil
}

func (s *MemoryStore) Save(_ context.Context, c *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.UpdatedAt = time.Now().UTC()
	stored := *c
	stored.Items = append([]models.CartItem{}, c.Items...)
	s.carts[c.ID] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
	return nil
}
