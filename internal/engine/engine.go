// Package engine implements the cooperative Action scheduler (spec
// section 4.7/4.8): Engine drives Actions through
// created→pending/waiting→successful/failed→created, with Proxy binding a
// message filter and callback to a hub.Wrapper for the actions that need
// to wait on a notification.
package engine

// Engine holds two ordered sequences, created and pending, and advances
// both once per Step (spec section 4.7).
type Engine struct {
	created []*Action
	pending []*Action
}

// New returns an empty Engine.
func New() *Engine {
	return &Engine{}
}

// AddAction enqueues a in created, to be called on the next Step.
func (e *Engine) AddAction(a *Action) {
	e.created = append(e.created, a)
}

// Step runs one scheduling pass (spec section 4.7):
//  1. Pending actions that reached waiting are reset and removed from
//     pending; any that come out failed-and-repeat re-queue into created.
//  2. Created actions are called; those now pending move to pending;
//     those now failed-and-repeat are reset and re-queued into created.
//     Everything else (successful, or failed without repeat) is dropped.
func (e *Engine) Step() {
	var stillPending []*Action
	var nextCreated []*Action

	for _, a := range e.pending {
		if a.Status() != StatusWaiting {
			stillPending = append(stillPending, a)
			continue
		}
		a.Reset()
		if a.Status() == StatusFailed && a.Repeat() {
			a.Reset()
			nextCreated = append(nextCreated, a)
		}
	}
	e.pending = stillPending

	for _, a := range e.created {
		a.Call()
		switch {
		case a.Status() == StatusPending:
			e.pending = append(e.pending, a)
		case a.Status() == StatusFailed && a.Repeat():
			a.Reset()
			nextCreated = append(nextCreated, a)
		}
	}

	e.created = nextCreated
}

// Pending exposes the current pending count, for admin/diagnostics.
func (e *Engine) Pending() int { return len(e.pending) }

// Created exposes the current created count, for admin/diagnostics.
func (e *Engine) Created() int { return len(e.created) }
