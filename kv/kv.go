package kv

import (
	"context"
	"sync"
)

// Store is durable client-local key-value storage: the credential, the
// per-order acknowledged flags and the legacy guest-cart bucket live here and
// nowhere else. It is injected rather than touched as ambient global state so
// tests can swap in the in-memory version.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// Memory is the in-process Store used by tests and single-node dev runs.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(_ context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *Memory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *Memory) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
