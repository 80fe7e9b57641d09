// Package cache stores rendered output keyed by configuration, output
// format and source text.
package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/zeebo/blake3"
)

// ErrCacheMiss is returned by Get when no value is stored for a key.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a string key/value store for rendered documents.
type Cache interface {
	// Get returns the value stored for key or ErrCacheMiss.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value for key.
	Set(ctx context.Context, key, value string) error
}

// Key derives a cache key from a configuration fingerprint, an output
// format and the source document. The parts are length-prefixed so no two
// distinct triples collide by concatenation.
func Key(fingerprint, format string, source []byte) string {
	h := blake3.New()
	for _, part := range [][]byte{[]byte(fingerprint), []byte(format), source} {
		var n [8]byte
		l := uint64(len(part))
		for i := range n {
			n[i] = byte(l >> (8 * i))
		}
		_, _ = h.Write(n[:])
		_, _ = h.Write(part)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Memory is a bounded in-process cache. When full, the oldest entry is
// evicted first.
type Memory struct {
	mu     sync.Mutex
	limit  int
	values map[string]string
	order  []string
}

// NewMemory creates a Memory cache holding at most limit entries.
// A limit of zero or less means unbounded.
func NewMemory(limit int) *Memory {
	return &Memory{
		limit:  limit,
		values: make(map[string]string),
	}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return v, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, key)
	}
	m.values[key] = value

	for m.limit > 0 && len(m.order) > m.limit {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.values, oldest)
	}
	return nil
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}
