package lifecycle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	mu         sync.Mutex
	hidden     []bool
	terminated int
	allow      bool
}

func (r *recordingListener) VisibilityChanged(hidden bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden = append(r.hidden, hidden)
}

func (r *recordingListener) Terminating() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminated++
	return r.allow
}

func (r *recordingListener) visibilityEvents() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.hidden...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestHubDeliversVisibility(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &recordingListener{allow: true}
	b := &recordingListener{allow: true}
	hub.Subscribe(a)
	hub.Subscribe(b)

	hub.PublishVisibility(true)
	hub.PublishVisibility(false)

	waitFor(t, func() bool { return len(a.visibilityEvents()) == 2 && len(b.visibilityEvents()) == 2 })
	assert.Equal(t, []bool{true, false}, a.visibilityEvents())
	assert.Equal(t, []bool{true, false}, b.visibilityEvents())
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &recordingListener{allow: true}
	b := &recordingListener{allow: true}
	idA := hub.Subscribe(a)
	hub.Subscribe(b)

	hub.Unsubscribe(idA)
	hub.PublishVisibility(true)

	waitFor(t, func() bool { return len(b.visibilityEvents()) == 1 })
	assert.Empty(t, a.visibilityEvents())
}

func TestHubCallsReturnAfterStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := &recordingListener{allow: true}
	id := hub.Subscribe(a)
	require.NotEmpty(t, id)

	hub.Stop()

	// None of these may block once the hub is stopped, no matter how far
	// the run loop got before exiting.
	finished := make(chan struct{})
	go func() {
		hub.Unsubscribe(id)
		hub.Subscribe(&recordingListener{allow: true})
		for i := 0; i < 20; i++ {
			hub.PublishVisibility(true)
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("hub calls blocked after Stop")
	}

	// With no run loop at all, a stopped hub refuses new subscriptions.
	dead := NewHub()
	dead.Stop()
	assert.Empty(t, dead.Subscribe(a))
	dead.Unsubscribe("whatever")
	dead.PublishVisibility(true)
}

func TestHubTerminateAggregates(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	agree := &recordingListener{allow: true}
	refuse := &recordingListener{allow: false}
	hub.Subscribe(agree)
	hub.Subscribe(refuse)

	// Give the run loop a chance to process both registrations.
	waitFor(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.listeners) == 2
	})

	require.False(t, hub.Terminate())
	assert.Equal(t, 1, agree.terminated)
	assert.Equal(t, 1, refuse.terminated)

	refuse.allow = true
	assert.True(t, hub.Terminate())
}
