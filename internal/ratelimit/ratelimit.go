// Package ratelimit provides per-key fixed-window request counting.
package ratelimit

import (
	"sync"
	"time"
)

// Counter is the injected counter-store abstraction. Increment bumps the
// key's count for the current window and returns the new count; callers
// compare it against their limit. A distributed implementation can replace
// the in-memory one without touching callers.
type Counter interface {
	Increment(key string) (int, error)
}

// Config holds fixed-window settings.
type Config struct {
	Window time.Duration
}

// DefaultConfig returns the chat quota window.
func DefaultConfig() Config {
	return Config{Window: time.Minute}
}

// FixedWindow counts requests per key in fixed windows. Windows reset lazily
// on the first increment after expiry; no background timer is involved.
type FixedWindow struct {
	mu      sync.Mutex
	entries map[string]*entry
	window  time.Duration

	// now is swappable for tests.
	now func() time.Time
}

type entry struct {
	windowStart time.Time
	count       int
}

// NewFixedWindow creates a counter with the given window size.
func NewFixedWindow(config Config) *FixedWindow {
	if config.Window <= 0 {
		config = DefaultConfig()
	}
	return &FixedWindow{
		entries: make(map[string]*entry),
		window:  config.Window,
		now:     time.Now,
	}
}

// Increment bumps the key's count and returns it. The map access and the
// counter update happen under one lock so concurrent callers never lose an
// increment.
func (f *FixedWindow) Increment(key string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	e, ok := f.entries[key]
	if !ok || now.Sub(e.windowStart) >= f.window {
		f.entries[key] = &entry{windowStart: now, count: 1}
		return 1, nil
	}

	e.count++
	return e.count, nil
}

// ActiveKeys returns the number of keys with a live window; expired entries
// are purged as a side effect so the map does not grow without bound.
func (f *FixedWindow) ActiveKeys() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	for key, e := range f.entries {
		if now.Sub(e.windowStart) >= f.window {
			delete(f.entries, key)
		}
	}
	return len(f.entries)
}
