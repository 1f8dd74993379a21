package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// MemoryCache is the single-process Cache. Entries expire lazily on read.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration

	now func() time.Time
}

func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: map[string]memoryEntry{},
		ttl:     ttl,
		now:     time.Now,
	}
}

func (mc *MemoryCache) Get(ctx context.Context, view string, page int) ([]byte, bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	entry, ok := mc.entries[Key(view, page)]
	if !ok {
		return nil, false, nil
	}
	if mc.now().After(entry.expires) {
		delete(mc.entries, Key(view, page))
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (mc *MemoryCache) Set(ctx context.Context, view string, page int, payload []byte) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.entries[Key(view, page)] = memoryEntry{
		payload: payload,
		expires: mc.now().Add(mc.ttl),
	}
	return nil
}

func (mc *MemoryCache) Invalidate(ctx context.Context, view string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	prefix := view + ":"
	for key := range mc.entries {
		if strings.HasPrefix(key, prefix) {
			delete(mc.entries, key)
		}
	}
	return nil
}

func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.entries = map[string]memoryEntry{}
	return nil
}

var _ Cache = (*MemoryCache)(nil)
