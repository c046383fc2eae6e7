package cosmic

import (
	"sync"
	"time"

	"voicenotes-backend/domain/notes"
)

// notesCache is a single-entry TTL cache for the full note list. Chat
// context assembly refetches all notes on every turn; this keeps that
// from hammering the upstream within a burst of turns.
type notesCache struct {
	mu        sync.RWMutex
	value     []notes.Note
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

func newNotesCache(ttl time.Duration) *notesCache {
	return &notesCache{ttl: ttl, now: time.Now}
}

func (c *notesCache) Get() ([]notes.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil || c.now().After(c.expiresAt) {
		return nil, false
	}
	return c.value, true
}

func (c *notesCache) Set(value []notes.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.expiresAt = c.now().Add(c.ttl)
}

func (c *notesCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = nil
}
