// Package cache holds a short-lived in-memory map of verified sessions so the
// gateway does not hit the auth backend on every /me call.
package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/abuRizq/vegetable-shop/pkg/cryptox"
)

type entry struct {
	user      json.RawMessage
	expiresAt time.Time
}

// SessionCache maps token fingerprints to the user payload the backend
// returned for them. Entries never hold the raw token.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

func New(ttl time.Duration) *SessionCache {
	c := &SessionCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached user for the token, if present and fresh.
func (c *SessionCache) Get(token string) (json.RawMessage, bool) {
	key := cryptox.FingerprintToken(token)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.user, true
}

// Set records a positive backend verdict for the token.
func (c *SessionCache) Set(token string, user json.RawMessage) {
	key := cryptox.FingerprintToken(token)

	c.mu.Lock()
	c.entries[key] = entry{
		user:      user,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Delete drops the entry for the token. Called on logout and on any backend
// rejection.
func (c *SessionCache) Delete(token string) {
	key := cryptox.FingerprintToken(token)

	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len reports the number of entries, expired ones included.
func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop terminates the cleanup goroutine.
func (c *SessionCache) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

func (c *SessionCache) cleanupLoop() {
	defer close(c.doneCh)

	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}
