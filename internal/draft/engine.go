// Package draft implements the draft persistence engine: it owns the
// in-memory editable state for one page, mirrors it into a durable
// key-value store on a debounce timer and on host lifecycle events, and
// restores it on the next start.
//
// The engine is mutex-serialized. Writes happen while the lock is held, so
// no two writes for the same engine are ever in flight at once; across
// engines (or across processes sharing a store) the discipline is
// last-writer-wins, by design and without locking.
package draft

import (
	"fmt"
	"sync"
	"time"

	"draftkeep/store"
)

// State names the scheduling phase the engine is in.
type State string

const (
	StateIdle   State = "idle"
	StateDirty  State = "dirty"
	StateSaving State = "saving"
)

// Engine is one draft persistence instance, bound to a page key and a store.
type Engine struct {
	mu sync.Mutex

	page    PageKey
	key     string
	storage *storageAdapter
	sweeper *Sweeper
	opts    Options

	initial map[string]any
	data    map[string]any

	state       State
	everTouched bool
	started     bool
	stopped     bool

	timer    *time.Timer
	timerGen uint64

	lastSaved time.Time
	lastStamp int64 // last timestamp written for this key; never decreases

	subID string
}

// NewEngine builds an engine for the given page with the caller-supplied
// default state. Nothing is read or written until Start.
func NewEngine(page PageKey, initial map[string]any, st store.Store, opts Options) (*Engine, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("nil store for page %q", page)
	}
	opts.applyDefaults()

	e := &Engine{
		page:    page,
		key:     page.Key(),
		opts:    opts,
		initial: cloneMap(initial),
		data:    cloneMap(initial),
		state:   StateIdle,
		sweeper: NewSweeper(st, opts.Retention),
	}
	e.storage = &storageAdapter{
		st:       st,
		maxBytes: opts.MaxDraftBytes,
		onWriteFailure: func() {
			// A failed write usually means the store is full; reclaim what
			// the retention window allows and give up on this write.
			e.sweeper.Sweep()
		},
	}
	return e, nil
}

// Start restores any stored draft over the defaults (stored fields win,
// newly added default fields survive), runs a retention sweep, and
// subscribes to the lifecycle hub when one was provided. The restore
// callback fires exactly once, before Start returns.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.started = true

	restored := e.storage.get(e.key)
	if restored != nil {
		merged := cloneMap(e.initial)
		for field, value := range restored.Data {
			merged[field] = value
		}
		e.data = merged
		e.lastStamp = restored.Timestamp
	}
	e.mu.Unlock()

	if restored != nil {
		if e.opts.OnRestore != nil {
			e.opts.OnRestore(restored)
		}
		if e.opts.Toasts {
			e.opts.Notifier.Info(fmt.Sprintf("Restored draft for %s", e.page))
		}
	}

	e.sweeper.Sweep()

	if e.opts.Lifecycle != nil {
		e.subID = e.opts.Lifecycle.Subscribe(e)
	}
}

// Stop performs the final teardown save (only if a field was ever set to a
// non-nil, non-empty value), releases the timer, and unsubscribes. The
// engine is terminal afterwards; mutators become no-ops.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.cancelTimerLocked()
	if e.everTouched && significant(e.data, e.initial) {
		e.saveLocked()
	}
	e.stopped = true
	subID := e.subID
	e.mu.Unlock()

	if subID != "" && e.opts.Lifecycle != nil {
		e.opts.Lifecycle.Unsubscribe(subID)
	}
}

// Set updates a single field and re-arms the debounce timer.
func (e *Engine) Set(field string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	e.setFieldLocked(field, value)
	e.markDirtyLocked()
}

// Merge applies several fields at once, arming the debounce timer once.
func (e *Engine) Merge(fields map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped || len(fields) == 0 {
		return
	}
	for field, value := range fields {
		e.setFieldLocked(field, value)
	}
	e.markDirtyLocked()
}

// Replace swaps the whole state: defaults overlaid with the given fields.
// Fields absent from the argument revert to their default values.
func (e *Engine) Replace(fields map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	e.data = cloneMap(e.initial)
	for field, value := range fields {
		e.setFieldLocked(field, value)
	}
	e.markDirtyLocked()
}

// State returns a copy of the current in-memory field map.
func (e *Engine) State() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneMap(e.data)
}

// Field returns a single field value.
func (e *Engine) Field(name string) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.data[name]
	return v, ok
}

// ForceSave cancels any pending debounce and writes synchronously. The
// significance rule still applies: content-free state is never persisted.
// Returns whether a write happened and succeeded.
func (e *Engine) ForceSave() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return false
	}
	e.cancelTimerLocked()
	if !significant(e.data, e.initial) {
		e.state = StateIdle
		return false
	}
	return e.saveLocked()
}

// VisibilityChanged implements lifecycle.Listener. A document going hidden
// may be the last event before the host is suspended or killed, so the
// engine saves immediately instead of waiting out the debounce.
func (e *Engine) VisibilityChanged(hidden bool) {
	if !hidden {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	e.cancelTimerLocked()
	if significant(e.data, e.initial) {
		e.saveLocked()
	} else {
		e.state = StateIdle
	}
}

// Terminating implements lifecycle.Listener: a synchronous best-effort save
// before the host goes away. When the unload warning is enabled and there
// were unsaved changes on entry, the injected Confirmer decides whether the
// host should proceed; without a Confirmer the host always proceeds.
func (e *Engine) Terminating() bool {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return true
	}
	wasDirty := e.state == StateDirty
	e.cancelTimerLocked()
	if significant(e.data, e.initial) {
		e.saveLocked()
	} else {
		e.state = StateIdle
	}
	e.mu.Unlock()

	if e.opts.SkipUnloadWarning || !wasDirty || e.opts.Confirmer == nil {
		return true
	}
	return e.opts.Confirmer.Confirm("You have unsaved changes. Leave anyway?")
}

// Clear removes the stored draft and resets the in-memory state to the
// defaults. Unless skipConfirm is set, the injected Confirmer is asked
// first; declining makes Clear a no-op. Returns whether the clear happened.
func (e *Engine) Clear(skipConfirm bool) bool {
	e.mu.Lock()
	stopped := e.stopped
	e.mu.Unlock()
	if stopped {
		return false
	}

	if !skipConfirm && e.opts.Confirmer != nil {
		if !e.opts.Confirmer.Confirm("Discard the saved draft?") {
			return false
		}
	}

	e.mu.Lock()
	e.cancelTimerLocked()
	e.storage.remove(e.key)
	e.data = cloneMap(e.initial)
	e.state = StateIdle
	e.everTouched = false
	e.lastSaved = time.Time{}
	e.mu.Unlock()

	if e.opts.OnClear != nil {
		e.opts.OnClear()
	}
	if e.opts.Toasts {
		e.opts.Notifier.Info(fmt.Sprintf("Cleared draft for %s", e.page))
	}
	return true
}

// HasDraft reports whether a draft is currently stored for this page.
func (e *Engine) HasDraft() bool {
	return e.storage.get(e.key) != nil
}

// LastSavedAt returns when this key was last written: the save instant from
// this engine's lifetime if there is one, otherwise the stored draft's own
// timestamp.
func (e *Engine) LastSavedAt() (time.Time, bool) {
	e.mu.Lock()
	saved := e.lastSaved
	e.mu.Unlock()
	if !saved.IsZero() {
		return saved, true
	}
	if d := e.storage.get(e.key); d != nil {
		return time.UnixMilli(d.Timestamp), true
	}
	return time.Time{}, false
}

// CurrentState exposes the scheduling phase, mainly for tests and debugging.
func (e *Engine) CurrentState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// externalChange handles a watcher report that someone else wrote our key.
// Warn-only: last writer wins, per the documented multi-writer policy.
func (e *Engine) externalChange() {
	e.mu.Lock()
	d := e.storage.get(e.key)
	ours := d != nil && d.Timestamp == e.lastStamp
	e.mu.Unlock()

	if d == nil || ours {
		return
	}
	e.opts.Notifier.Warn(fmt.Sprintf("Draft for %s was changed by another session; the newest save wins", e.page))
}

// BindWatcher warns through the Notifier when another process writes this
// engine's draft in a shared file store. Close the returned watcher when
// the engine stops.
func (e *Engine) BindWatcher(fs *store.FileStore) (*store.Watcher, error) {
	return fs.Watch(func(key string) {
		if key != e.key {
			return
		}
		e.externalChange()
	})
}

func (e *Engine) setFieldLocked(field string, value any) {
	e.data[field] = value
	if value == nil {
		return
	}
	if s, ok := value.(string); ok && s == "" {
		return
	}
	e.everTouched = true
}

// markDirtyLocked re-arms the debounce: at most one pending timer exists,
// and arming always cancels the previous one. The generation counter keeps
// an already-fired stale timer from saving early.
func (e *Engine) markDirtyLocked() {
	e.state = StateDirty
	e.cancelTimerLocked()
	e.timerGen++
	gen := e.timerGen
	e.timer = time.AfterFunc(e.opts.DebounceDelay, func() { e.onTimer(gen) })
}

func (e *Engine) onTimer(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped || gen != e.timerGen || e.state != StateDirty {
		return
	}
	if significant(e.data, e.initial) {
		e.saveLocked()
		return
	}
	// Nothing worth keeping; skip silently so a previously stored
	// meaningful draft is never clobbered with emptiness.
	e.state = StateIdle
}

// saveLocked writes the current state through the storage adapter. The
// timestamp is clamped to never decrease for this key, even if the wall
// clock steps backwards.
func (e *Engine) saveLocked() bool {
	e.state = StateSaving
	ts := time.Now().UnixMilli()
	if ts < e.lastStamp {
		ts = e.lastStamp
	}
	d := &store.Draft{Data: cloneMap(e.data), Timestamp: ts, Version: store.DraftVersion}

	ok := e.storage.set(e.key, d)
	if ok {
		e.lastStamp = ts
		e.lastSaved = time.Now()
		if e.opts.Toasts {
			e.opts.Notifier.Info(fmt.Sprintf("Draft saved for %s", e.page))
		}
	}
	e.state = StateIdle
	return ok
}

func (e *Engine) cancelTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.timerGen++
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
