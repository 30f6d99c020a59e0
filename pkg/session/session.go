// Package session keeps one-shot messages for an admin user between
// requests: an action flashes "3 products were successfully updated." and
// the next changelist read drains it.
//
//	store := session.NewStore(config.MessageTTL())
//	store.Add(ctx, owner, session.Message{Level: session.Success, Text: "Saved."})
//	msgs, _ := store.Drain(ctx, owner)
//
// Messages live in Redis when cache.Connect succeeded and in process
// memory otherwise.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/storefront/pkg/cache"
)

// Message levels, lowest to highest.
const (
	Debug   = "debug"
	Info    = "info"
	Success = "success"
	Warning = "warning"
	Error   = "error"
)

type Message struct {
	Level string `json:"level"`
	Text  string `json:"message"`
}

// Store queues messages per owner.
type Store interface {
	Add(ctx context.Context, owner string, msg Message) error
	// Drain returns the owner's messages in the order added and forgets them.
	Drain(ctx context.Context, owner string) ([]Message, error)
}

// NewStore returns a Redis store when the shared client is connected and a
// memory store otherwise. Unread messages expire after ttl.
func NewStore(ttl time.Duration) Store {
	if cache.Available() {
		return NewRedisStore(cache.RDB, ttl)
	}
	return NewMemoryStore(ttl)
}

// ------------------- memory -------------------

type memEntry struct {
	msgs    []Message
	expires time.Time
}

type MemoryStore struct {
	mu    sync.Mutex
	items map[string]*memEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: map[string]*memEntry{}, ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Add(_ context.Context, owner string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	e, ok := s.items[owner]
	if !ok {
		e = &memEntry{}
		s.items[owner] = e
	}
	e.msgs = append(e.msgs, msg)
	e.expires = now.Add(s.ttl)
	return nil
}

func (s *MemoryStore) Drain(_ context.Context, owner string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(s.now())
	e, ok := s.items[owner]
	if !ok {
		return nil, nil
	}
	delete(s.items, owner)
	return e.msgs, nil
}

// sweep drops expired entries. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for owner, e := range s.items {
		if now.After(e.expires) {
			delete(s.items, owner)
		}
	}
}

// ------------------- redis -------------------

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(owner string) string { return "storefront:messages:" + owner }

func (s *RedisStore) Add(ctx context.Context, owner string, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	key := redisKey(owner)
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, raw)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session: redis add: %w", err)
	}
	return nil
}

func (s *RedisStore) Drain(ctx context.Context, owner string) ([]Message, error) {
	key := redisKey(owner)
	var rng *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		rng = p.LRange(ctx, key, 0, -1)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("session: redis drain: %w", err)
	}

	var out []Message
	for _, raw := range rng.Val() {
		var m Message
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
