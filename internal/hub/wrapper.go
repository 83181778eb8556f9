package hub

import (
	"proxyrobots/internal/discovery"
	"proxyrobots/shared"
)

// Waiter is an object that needs to be re-bound whenever a new MessageHub
// is created (spec section 4.6/GLOSSARY).
type Waiter interface {
	NotifyMessageHub(h *MessageHub)
}

// Wrapper is the common contract both the static and broadcaster variants
// expose (spec section 4.6).
type Wrapper interface {
	IsValid() bool
	Hub() *MessageHub
	Step() error
	RegisterWaiter(w Waiter)
}

// StaticWrapper holds one hub from construction and never changes it (spec
// section 4.6).
type StaticWrapper struct {
	h       *MessageHub
	waiters []Waiter
}

func NewStaticWrapper(h *MessageHub) *StaticWrapper {
	return &StaticWrapper{h: h}
}

func (w *StaticWrapper) IsValid() bool    { return w.h != nil }
func (w *StaticWrapper) Hub() *MessageHub { return w.h }

func (w *StaticWrapper) Step() error {
	if w.h == nil {
		return nil
	}
	return w.h.Step()
}

func (w *StaticWrapper) RegisterWaiter(waiter Waiter) {
	w.waiters = append(w.waiters, waiter)
	if w.h != nil {
		waiter.NotifyMessageHub(w.h)
	}
}

// BroadcasterWrapper creates, destroys, and replaces the inner MessageHub
// in response to pinger events (spec section 4.6).
type BroadcasterWrapper struct {
	h       *MessageHub
	waiters []Waiter
	events  <-chan discovery.Event
}

func NewBroadcasterWrapper(events <-chan discovery.Event) *BroadcasterWrapper {
	return &BroadcasterWrapper{events: events}
}

func (w *BroadcasterWrapper) IsValid() bool    { return w.h != nil }
func (w *BroadcasterWrapper) Hub() *MessageHub { return w.h }

func (w *BroadcasterWrapper) RegisterWaiter(waiter Waiter) {
	w.waiters = append(w.waiters, waiter)
	if w.h != nil {
		waiter.NotifyMessageHub(w.h)
	}
}

// Step drains every pending pinger event, then delegates to the current
// hub if one exists. Hub replacement happens before dispatch in the same
// tick (spec section 5, ordering guarantee 4).
func (w *BroadcasterWrapper) Step() error {
	for w.drainOne() {
	}

	if w.h == nil {
		return nil
	}
	return w.h.Step()
}

func (w *BroadcasterWrapper) drainOne() bool {
	select {
	case ev, ok := <-w.events:
		if !ok {
			return false
		}
		w.handle(ev)
		return true
	default:
		return false
	}
}

func (w *BroadcasterWrapper) handle(ev discovery.Event) {
	if ev.Lost {
		if w.h != nil {
			shared.SafeClose(w.h)
			w.h = nil
		}
		return
	}

	newHub, err := New(ev.Endpoints)
	if err != nil {
		shared.DebugError(err)
		return
	}
	if w.h != nil {
		shared.SafeClose(w.h)
	}
	w.h = newHub
	w.notifyWaiters()
}

func (w *BroadcasterWrapper) notifyWaiters() {
	for _, waiter := range w.waiters {
		waiter.NotifyMessageHub(w.h)
	}
}
