package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(ttl time.Duration) (*WorkspaceRegistry, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewWorkspaceRegistry(func(n Notifier) *Workspace {
		return NewWorkspace(Repositories{}, WithNotifier(n))
	}, ttl)
	r.now = func() time.Time { return now }
	return r, &now
}

func TestWorkspaceRegistryAcquire(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)

	first := r.Acquire("")
	require.NotNil(t, first.Workspace)
	_, err := uuid.Parse(first.ID)
	assert.NoError(t, err)

	assert.Same(t, first, r.Acquire(first.ID))

	other := r.Acquire("unknown-id")
	assert.NotEqual(t, first.ID, other.ID)
	assert.NotEqual(t, "unknown-id", other.ID)
	assert.Equal(t, 2, r.Len())
}

func TestWorkspaceRegistryNoticesReachEntry(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	e := r.Acquire("")

	e.Workspace.notify(Notice{Title: "hello"})

	assert.Equal(t, []Notice{{Title: "hello", Variant: VariantDefault}}, e.Notices.Drain())
}

func TestWorkspaceRegistrySweep(t *testing.T) {
	r, now := newTestRegistry(time.Hour)
	idle := r.Acquire("")
	*now = now.Add(30 * time.Minute)
	active := r.Acquire("")

	*now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	assert.Same(t, active, r.Acquire(active.ID))
	assert.NotEqual(t, idle.ID, r.Acquire(idle.ID).ID)
}

func TestWorkspaceRegistryRemove(t *testing.T) {
	r, _ := newTestRegistry(0)
	e := r.Acquire("")

	r.Remove(e.ID)

	assert.Zero(t, r.Len())
	assert.Zero(t, r.Sweep())
}
