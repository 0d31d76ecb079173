package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftkeep/store"
)

func TestSweepRemovesOnlyExpiredDrafts(t *testing.T) {
	m := store.NewMemoryStore()
	now := time.Now()

	require.NoError(t, m.Set("draft_manual-note-editor", &store.Draft{
		Data: map[string]any{"title": "old"}, Timestamp: now.Add(-8 * 24 * time.Hour).UnixMilli(), Version: 1,
	}))
	require.NoError(t, m.Set("draft_code-runner", &store.Draft{
		Data: map[string]any{"code": "recent"}, Timestamp: now.Add(-6 * 24 * time.Hour).UnixMilli(), Version: 1,
	}))
	// Keys outside the draft namespace are not ours to touch.
	require.NoError(t, m.Set("session_token", &store.Draft{
		Data: map[string]any{}, Timestamp: 0, Version: 1,
	}))

	removed := NewSweeper(m, DefaultRetention).Sweep()
	assert.Equal(t, 1, removed)

	_, err := m.Get("draft_manual-note-editor")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = m.Get("draft_code-runner")
	assert.NoError(t, err)
	_, err = m.Get("session_token")
	assert.NoError(t, err)
}

// purgingStore exercises the Purger fast path.
type purgingStore struct {
	*store.MemoryStore
	purgedBefore int64
}

func (p *purgingStore) PurgeOlderThan(cutoffMillis int64) (int, error) {
	p.purgedBefore = cutoffMillis
	return 3, nil
}

func TestSweepPrefersPurgerFastPath(t *testing.T) {
	p := &purgingStore{MemoryStore: store.NewMemoryStore()}

	removed := NewSweeper(p, 24*time.Hour).Sweep()
	assert.Equal(t, 3, removed)

	wantCutoff := time.Now().Add(-24 * time.Hour).UnixMilli()
	assert.InDelta(t, wantCutoff, p.purgedBefore, 5000)
}

func TestSweepOnEmptyStore(t *testing.T) {
	assert.Zero(t, NewSweeper(store.NewMemoryStore(), 0).Sweep())
}
