package hub

import (
	"testing"

	"proxyrobots/internal/discovery"
)

type countingWaiter struct {
	notifications int
	lastHub       *MessageHub
}

func (w *countingWaiter) NotifyMessageHub(h *MessageHub) {
	w.notifications++
	w.lastHub = h
}

// TestBroadcasterHubAppearsGoneAppearsScenario4 exercises spec section 8's
// "hub-appears -> hub-gone -> hub-appears" scenario: exactly two waiter
// notifications, and IsValid is true at the end.
func TestBroadcasterHubAppearsGoneAppearsScenario4(t *testing.T) {
	events := make(chan discovery.Event, 4)
	w := NewBroadcasterWrapper(events)

	waiter := &countingWaiter{}
	w.RegisterWaiter(waiter)
	if waiter.notifications != 0 {
		t.Fatalf("expected no notification before any hub exists, got %d", waiter.notifications)
	}
	if w.IsValid() {
		t.Fatalf("expected wrapper invalid before any hub appears")
	}

	// handle() dials real connectors from an Event's endpoints, so drive
	// the appear path directly against an in-process hub instead of
	// routing a real Event through Step (which would need a live server).
	h := NewFromConnectors(&mockReader{}, &mockWriter{})
	w.h = h
	w.notifyWaiters()
	if waiter.notifications != 1 {
		t.Fatalf("expected exactly one notification after hub appears, got %d", waiter.notifications)
	}
	if !w.IsValid() {
		t.Fatalf("expected wrapper valid once a hub is installed")
	}

	events <- discovery.Event{Lost: true}
	if err := w.Step(); err != nil {
		t.Fatalf("step (lost): %v", err)
	}
	if w.IsValid() {
		t.Fatalf("expected wrapper invalid after a lost event")
	}
	if waiter.notifications != 1 {
		t.Fatalf("a lost event must not itself notify waiters, got %d", waiter.notifications)
	}

	h2 := NewFromConnectors(&mockReader{}, &mockWriter{})
	w.h = h2
	w.notifyWaiters()
	if waiter.notifications != 2 {
		t.Fatalf("expected exactly two notifications total after the second appear, got %d", waiter.notifications)
	}
	if !w.IsValid() {
		t.Fatalf("expected wrapper valid at the end of the sequence")
	}
}

func TestStaticWrapperNotifiesImmediatelyIfAlreadyValid(t *testing.T) {
	h := NewFromConnectors(&mockReader{}, &mockWriter{})
	w := NewStaticWrapper(h)

	waiter := &countingWaiter{}
	w.RegisterWaiter(waiter)

	if waiter.notifications != 1 {
		t.Fatalf("expected immediate notification for an already-valid static wrapper, got %d", waiter.notifications)
	}
	if waiter.lastHub != h {
		t.Fatalf("expected the waiter to observe the wrapper's hub")
	}
}
