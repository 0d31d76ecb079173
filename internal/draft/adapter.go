package draft

import (
	"encoding/json"
	"errors"

	"draftkeep/pkg/logger"
	"draftkeep/store"
)

// storageAdapter makes the raw store total from the engine's perspective:
// no method ever propagates an error. Failures degrade to "draft not
// saved"; the in-memory editor keeps working either way.
type storageAdapter struct {
	st       store.Store
	maxBytes int

	// onWriteFailure runs once per failed backend write, giving the engine
	// a chance to reclaim space. No retry follows: retrying a full store
	// just amplifies writes.
	onWriteFailure func()
}

func (a *storageAdapter) get(key string) *store.Draft {
	d, err := a.st.Get(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Sugar.Warnf("Failed to read draft %s, treating as absent: %v", key, err)
		}
		return nil
	}
	if d.Version > store.DraftVersion {
		logger.Sugar.Warnf("Draft %s has version %d from a newer build, ignoring it", key, d.Version)
		return nil
	}
	return d
}

func (a *storageAdapter) set(key string, d *store.Draft) bool {
	raw, err := json.Marshal(d)
	if err != nil {
		logger.Sugar.Warnf("Failed to serialize draft %s: %v", key, err)
		return false
	}
	if len(raw) > a.maxBytes {
		logger.Sugar.Warnf("Draft %s is %d bytes, over the %d byte ceiling; not saving", key, len(raw), a.maxBytes)
		return false
	}

	if err := a.st.Set(key, d); err != nil {
		logger.Sugar.Warnf("Failed to persist draft %s: %v", key, err)
		if a.onWriteFailure != nil {
			a.onWriteFailure()
		}
		return false
	}
	return true
}

func (a *storageAdapter) remove(key string) bool {
	if err := a.st.Remove(key); err != nil {
		logger.Sugar.Warnf("Failed to remove draft %s: %v", key, err)
		return false
	}
	return true
}
