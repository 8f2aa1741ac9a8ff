package db

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory keeps preferences for the lifetime of the process.
type Memory struct {
	cache *cache.Cache
}

// NewMemory creates an empty in-memory store. Entries never expire.
func NewMemory() *Memory {
	return &Memory{cache: cache.New(cache.NoExpiration, 10*time.Minute)}
}

// Get returns the stored value for key.
func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.cache.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.cache.Set(key, value, cache.NoExpiration)
	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) {
	m.cache.Delete(key)
}
