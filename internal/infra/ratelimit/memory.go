package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// プロセス内の固定ウィンドウカウンタ。単一インスタンス向け。
// 複数インスタンスではRedisStoreに差し替える。
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// Incr はキーのカウントを+1して、現在値とウィンドウ残り時間を返す。
func (s *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &windowEntry{count: 0, resetAt: now.Add(window)}
		s.entries[key] = e
	}

	e.count++
	return e.count, e.resetAt.Sub(now), nil
}

// 期限切れエントリの掃除。main側でtickerから呼ぶ。
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.resetAt) {
			delete(s.entries, k)
		}
	}
}
