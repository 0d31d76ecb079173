// Package lifecycle carries host lifecycle events to draft engines.
//
// A browser host maps visibilitychange and beforeunload onto these events;
// a TUI or headless host publishes whatever equivalents it has. Engines
// subscribe when they start and unsubscribe when they stop, so the host
// never needs to know which editors are currently open.
package lifecycle

import (
	"sync"

	"github.com/google/uuid"

	"draftkeep/pkg/logger"
)

const (
	VisibilityType = "VISIBILITY" // Document became hidden or visible again
	TerminateType  = "TERMINATE"  // Host is about to shut down
)

// Event is a host lifecycle notification.
type Event struct {
	Type   string
	Hidden bool // VisibilityType only
}

// Listener receives lifecycle events.
//
// Terminating is the one synchronous hook: it must finish its best-effort
// save before returning, and returns false to ask the host to stay open.
type Listener interface {
	VisibilityChanged(hidden bool)
	Terminating() bool
}

type subscription struct {
	ID       string
	Listener Listener
}

// Hub fans lifecycle events out to subscribed listeners. Visibility events
// flow through the run loop; termination is synchronous because the host
// needs the aggregate answer before it exits.
type Hub struct {
	Register   chan subscription
	Unregister chan string
	Events     chan Event

	mu        sync.Mutex
	listeners map[string]Listener
	done      chan struct{}
	once      sync.Once
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan subscription),
		Unregister: make(chan string),
		Events:     make(chan Event, 8),
		listeners:  make(map[string]Listener),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and event dispatch. Start it in a goroutine
// before subscribing anything.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case sub := <-h.Register:
			h.mu.Lock()
			h.listeners[sub.ID] = sub.Listener
			h.mu.Unlock()

		case id := <-h.Unregister:
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()

		case event := <-h.Events:
			if event.Type != VisibilityType {
				logger.Sugar.Warnf("Unexpected lifecycle event type %q on the run loop", event.Type)
				continue
			}
			// Snapshot under the lock, dispatch outside it: a listener may
			// unsubscribe from inside its callback.
			h.mu.Lock()
			targets := make([]Listener, 0, len(h.listeners))
			for _, l := range h.listeners {
				targets = append(targets, l)
			}
			h.mu.Unlock()

			for _, l := range targets {
				l.VisibilityChanged(event.Hidden)
			}
		}
	}
}

// Subscribe registers a listener and returns its subscription ID. On a
// stopped hub it returns the empty ID: nothing will ever dispatch again,
// so there is no subscription to hold.
func (h *Hub) Subscribe(l Listener) string {
	id := uuid.NewString()
	select {
	case h.Register <- subscription{ID: id, Listener: l}:
		return id
	case <-h.done:
		return ""
	}
}

// Unsubscribe removes a previously registered listener. Safe to call after
// Stop; a stopped hub has already dropped its listeners.
func (h *Hub) Unsubscribe(id string) {
	select {
	case h.Unregister <- id:
	case <-h.done:
	}
}

// PublishVisibility reports the document becoming hidden (true) or visible.
// Events published after Stop are dropped.
func (h *Hub) PublishVisibility(hidden bool) {
	select {
	case h.Events <- Event{Type: VisibilityType, Hidden: hidden}:
	case <-h.done:
	}
}

// Terminate tells every listener the host is about to exit and returns
// whether all of them agreed to proceed. Listeners flush their state inside
// this call, so it must not be made from the run loop.
func (h *Hub) Terminate() bool {
	h.mu.Lock()
	targets := make([]Listener, 0, len(h.listeners))
	for _, l := range h.listeners {
		targets = append(targets, l)
	}
	h.mu.Unlock()

	proceed := true
	for _, l := range targets {
		if !l.Terminating() {
			proceed = false
		}
	}
	return proceed
}

// Stop shuts the run loop down. Subscribed listeners are dropped.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })
}
