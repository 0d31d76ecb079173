package draft

import (
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"draftkeep/pkg/logger"
	"draftkeep/store"
)

// Sweeper removes drafts that outlived the retention window. It runs on
// engine start and after a failed write; it is maintenance, not
// correctness, so every failure is logged and ignored.
type Sweeper struct {
	st        store.Store
	retention time.Duration
}

func NewSweeper(st store.Store, retention time.Duration) *Sweeper {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Sweeper{st: st, retention: retention}
}

// Sweep deletes expired drafts and returns how many were removed.
func (s *Sweeper) Sweep() int {
	cutoff := time.Now().Add(-s.retention).UnixMilli()

	if p, ok := s.st.(store.Purger); ok {
		n, err := p.PurgeOlderThan(cutoff)
		if err != nil {
			logger.Sugar.Warnf("Retention purge failed: %v", err)
			return 0
		}
		if n > 0 {
			logger.Sugar.Infof("Retention sweep removed %d expired draft(s)", n)
		}
		return n
	}

	keys, err := s.st.Keys()
	if err != nil {
		logger.Sugar.Warnf("Retention sweep could not list keys: %v", err)
		return 0
	}

	var removed int64
	var g errgroup.Group
	g.SetLimit(4)
	for _, key := range keys {
		if !strings.HasPrefix(key, store.KeyPrefix) {
			continue
		}
		key := key
		g.Go(func() error {
			d, err := s.st.Get(key)
			if err != nil {
				logger.Sugar.Warnf("Retention sweep skipping unreadable draft %s: %v", key, err)
				return nil
			}
			if d.Timestamp >= cutoff {
				return nil
			}
			if err := s.st.Remove(key); err != nil {
				logger.Sugar.Warnf("Retention sweep failed to remove %s: %v", key, err)
				return nil
			}
			atomic.AddInt64(&removed, 1)
			return nil
		})
	}
	g.Wait()

	if removed > 0 {
		logger.Sugar.Infof("Retention sweep removed %d expired draft(s)", removed)
	}
	return int(removed)
}
