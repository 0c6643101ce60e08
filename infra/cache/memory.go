// Package cache provides the in-memory and Redis rate-table caches.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/transfeo/pkg/provider"
)

type memoryEntry struct {
	table     *provider.RateTable
	expiresAt time.Time
}

// Memory implements cache.RatesCache with a process-local map. Expired
// entries are treated as misses and swept by a janitor goroutine.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

// NewMemory creates an in-memory rate cache and starts its cleanup loop.
func NewMemory() *Memory {
	c := &Memory{entries: make(map[string]*memoryEntry)}
	go c.cleanup()
	return c
}

// Get returns the cached table for key, or (nil, nil) on miss or expiry.
func (c *Memory) Get(_ context.Context, key string) (*provider.RateTable, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.table, nil
}

// Set stores the table under key for the given TTL.
func (c *Memory) Set(_ context.Context, key string, table *provider.RateTable, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &memoryEntry{table: table, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete removes the entry for key.
func (c *Memory) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

func (c *Memory) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.entries {
			if now.After(entry.expiresAt) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}
