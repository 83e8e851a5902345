package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// WorkspaceFactory builds a Workspace reporting to notifier.
type WorkspaceFactory func(notifier Notifier) *Workspace

// WorkspaceEntry is a registered Workspace and the notices it produced that
// have not been delivered yet.
type WorkspaceEntry struct {
	ID        string
	Workspace *Workspace
	Notices   *NoticeQueue

	lastSeen time.Time
}

// WorkspaceRegistry keeps one Workspace per browser session, keyed by an
// opaque id stored in the session cookie.
type WorkspaceRegistry struct {
	factory WorkspaceFactory
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*WorkspaceEntry
}

// NewWorkspaceRegistry creates a registry evicting entries idle for longer
// than ttl on Sweep. A zero ttl never evicts.
func NewWorkspaceRegistry(factory WorkspaceFactory, ttl time.Duration) *WorkspaceRegistry {
	return &WorkspaceRegistry{
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*WorkspaceEntry),
	}
}

// Acquire returns the entry registered under id, creating a new one with a
// fresh id when id is empty or unknown.
func (r *WorkspaceRegistry) Acquire(id string) *WorkspaceEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok && id != "" {
		e.lastSeen = r.now()
		return e
	}

	notices := &NoticeQueue{}
	e := &WorkspaceEntry{
		ID:        uuid.NewString(),
		Workspace: r.factory(notices),
		Notices:   notices,
		lastSeen:  r.now(),
	}
	r.entries[e.ID] = e
	return e
}

// Remove drops the entry registered under id.
func (r *WorkspaceRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Sweep evicts idle entries and returns how many were removed.
func (r *WorkspaceRegistry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

func (r *WorkspaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
