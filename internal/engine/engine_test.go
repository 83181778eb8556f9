package engine

import (
	"testing"

	"proxyrobots/internal/hub"
	"proxyrobots/internal/registry"
)

// stubWrapper is a minimal hub.Wrapper double: never valid, so
// RegisterWaiter just remembers the waiter without notifying.
type stubWrapper struct {
	waiters []hub.Waiter
}

func (w *stubWrapper) IsValid() bool        { return false }
func (w *stubWrapper) Hub() *hub.MessageHub { return nil }
func (w *stubWrapper) Step() error          { return nil }
func (w *stubWrapper) RegisterWaiter(waiter hub.Waiter) {
	w.waiters = append(w.waiters, waiter)
}

func TestCreatedWithTrueSuccessPredicateResolvesInOneStep(t *testing.T) {
	a := NewAction(func() {}, func() bool { return true }, nil, false)
	e := New()
	e.AddAction(a)

	e.Step()

	if a.Status() != StatusSuccessful {
		t.Fatalf("expected successful, got %s", a.Status())
	}
	if e.Created() != 0 || e.Pending() != 0 {
		t.Fatalf("expected action dropped after resolving, created=%d pending=%d", e.Created(), e.Pending())
	}
}

func TestCreatedWithFalsePredicateAndRepeatRecycles(t *testing.T) {
	calls := 0
	a := NewAction(func() { calls++ }, func() bool { return false }, nil, true)
	e := New()
	e.AddAction(a)

	e.Step()
	if a.Status() != StatusCreated {
		t.Fatalf("expected repeat-eligible failed action recycled to created, got %s", a.Status())
	}
	if e.Created() != 1 {
		t.Fatalf("expected action re-queued into created, got %d", e.Created())
	}

	e.Step()
	if calls != 2 {
		t.Fatalf("expected doer invoked again on the recycle, got %d calls", calls)
	}
}

func TestCreatedWithFalsePredicateNoRepeatIsDropped(t *testing.T) {
	a := NewAction(func() {}, func() bool { return false }, nil, false)
	e := New()
	e.AddAction(a)

	e.Step()

	if a.Status() != StatusFailed {
		t.Fatalf("expected failed, got %s", a.Status())
	}
	if e.Created() != 0 || e.Pending() != 0 {
		t.Fatalf("expected dropped, created=%d pending=%d", e.Created(), e.Pending())
	}
}

func TestProxyBoundActionWithoutNotificationStaysPending(t *testing.T) {
	w := &stubWrapper{}
	p := NewProxy(registry.TypeRegistered, "951", w, func(registry.Payload) error { return nil })
	a := NewAction(func() {}, nil, p, true)
	e := New()
	e.AddAction(a)

	e.Step()
	if a.Status() != StatusPending {
		t.Fatalf("expected pending, got %s", a.Status())
	}
	if e.Pending() != 1 {
		t.Fatalf("expected action parked in pending, got %d", e.Pending())
	}

	// Further steps without a notification must not move it anywhere.
	e.Step()
	e.Step()
	if a.Status() != StatusPending || e.Pending() != 1 {
		t.Fatalf("expected to remain pending indefinitely, got status=%s pending=%d", a.Status(), e.Pending())
	}
}

func TestProxyNotifyAdvancesToWaitingAndLeavesPending(t *testing.T) {
	w := &stubWrapper{}
	var gotPayload registry.Payload
	p := NewProxy(registry.TypeRegistered, "951", w, func(pl registry.Payload) error {
		gotPayload = pl
		return nil
	})
	a := NewAction(func() {}, nil, p, true)
	e := New()
	e.AddAction(a)
	e.Step() // created -> pending

	payload := &registry.RegisteredMessage{RobotID: "real_951"}
	if err := p.Notify(registry.TypeRegistered, "951", payload); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if a.Status() != StatusWaiting {
		t.Fatalf("expected waiting after notify, got %s", a.Status())
	}
	if gotPayload != registry.Payload(payload) {
		t.Fatalf("callback did not observe the notified payload")
	}

	// A proxy-bound action resolved via notify stays in waiting; Step's
	// pending pass removes it from pending without ever reaching
	// successful/failed, since the predicate path is gated to non-proxy
	// actions.
	e.Step()
	if a.Status() != StatusWaiting {
		t.Fatalf("expected proxy-bound action to remain waiting, got %s", a.Status())
	}
	if e.Pending() != 0 {
		t.Fatalf("expected action removed from pending once waiting, got %d", e.Pending())
	}
}

func TestProxyFilterMismatchIsFatal(t *testing.T) {
	w := &stubWrapper{}
	p := NewProxy(registry.TypeRegistered, "951", w, func(registry.Payload) error { return nil })

	err := p.Notify(registry.TypeRegistered, "someone_else", &registry.RegisteredMessage{})
	if err == nil {
		t.Fatalf("expected filter mismatch to be reported as an error")
	}
}

func TestEmptyRoutingFilterMatchesAnySender(t *testing.T) {
	w := &stubWrapper{}
	called := false
	p := NewProxy(registry.TypeInput, "", w, func(registry.Payload) error {
		called = true
		return nil
	})

	if err := p.Notify(registry.TypeInput, "anyone", &registry.InputMessage{}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !called {
		t.Fatalf("expected callback invoked for an empty-filter proxy regardless of sender")
	}
}
