package draft

import (
	"time"

	"draftkeep/lifecycle"
	"draftkeep/pkg/logger"
	"draftkeep/store"
)

const (
	// DefaultDebounceDelay is how long after the last mutation a save fires.
	DefaultDebounceDelay = 1000 * time.Millisecond
	// DefaultRetention is how long an untouched draft survives before the sweep removes it.
	DefaultRetention = 7 * 24 * time.Hour
	// DefaultMaxDraftBytes caps the serialized draft size, keeping well under
	// typical per-origin storage quotas.
	DefaultMaxDraftBytes = 4_500_000
)

// Notifier is the toast port: how the engine surfaces messages to the user.
// The default implementation just logs.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
}

// Confirmer asks the user a yes/no question. Used before clearing a draft
// and, when unload warnings are enabled, before the host terminates with
// unsaved changes.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Options configures an Engine. The zero value is usable: one-second
// debounce, seven-day retention, unload warning on, toasts off.
type Options struct {
	DebounceDelay time.Duration
	Retention     time.Duration
	MaxDraftBytes int

	// Toasts enables save/restore/clear notifications through the Notifier.
	// Off by default so autosave stays silent.
	Toasts bool

	// SkipUnloadWarning disables the confirmation prompt on Terminating
	// while the draft is dirty. The warning is on by default.
	SkipUnloadWarning bool

	// OnRestore runs exactly once when Start finds a stored draft.
	OnRestore func(restored *store.Draft)
	// OnClear runs after Clear removes the stored draft.
	OnClear func()

	Notifier  Notifier
	Confirmer Confirmer

	// Lifecycle, when set, delivers host visibility and termination events
	// to the engine between Start and Stop.
	Lifecycle *lifecycle.Hub
}

func (o *Options) applyDefaults() {
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = DefaultDebounceDelay
	}
	if o.Retention <= 0 {
		o.Retention = DefaultRetention
	}
	if o.MaxDraftBytes <= 0 {
		o.MaxDraftBytes = DefaultMaxDraftBytes
	}
	if o.Notifier == nil {
		o.Notifier = logNotifier{}
	}
}

// logNotifier routes toasts to the process logger.
type logNotifier struct{}

func (logNotifier) Info(msg string) { logger.Sugar.Info(msg) }
func (logNotifier) Warn(msg string) { logger.Sugar.Warn(msg) }
