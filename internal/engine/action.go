package engine

// Doer performs an Action's side effect (e.g. posting a frame).
type Doer func()

// SuccessPredicate reports whether a non-proxy Action has succeeded.
type SuccessPredicate func() bool

// Action is a functor pairing a doer and a success predicate, optionally
// bound to a Proxy that subscribes it to one message (spec section 4.8).
type Action struct {
	doer      Doer
	predicate SuccessPredicate
	proxy     *Proxy
	repeat    bool
	status    Status
}

// NewAction builds an Action in the created state. If proxy is non-nil it
// is bound to this action for later notification.
func NewAction(doer Doer, predicate SuccessPredicate, proxy *Proxy, repeat bool) *Action {
	a := &Action{
		doer:      doer,
		predicate: predicate,
		proxy:     proxy,
		repeat:    repeat,
		status:    StatusCreated,
	}
	if proxy != nil {
		proxy.Bind(a)
	}
	return a
}

// Status reports the action's current position in the lifecycle.
func (a *Action) Status() Status { return a.status }

// Repeat reports whether this action re-queues itself from a terminal
// state via Reset.
func (a *Action) Repeat() bool { return a.repeat }

// Call dispatches the doer, then advances the action: to pending if a
// proxy is bound, otherwise to waiting with the predicate evaluated
// immediately (spec section 4.8).
func (a *Action) Call() {
	if a.doer != nil {
		a.doer()
	}
	if a.proxy != nil {
		a.status = StatusPending
		return
	}
	a.status = StatusWaiting
	a.resolveWaiting()
}

// Reset advances a waiting action (evaluating the predicate, for
// non-proxy actions; a no-op for proxy-bound ones, which only resolve via
// Notify) or, from a terminal state, cycles repeat-eligible actions back
// to created (spec section 4.8).
func (a *Action) Reset() {
	switch a.status {
	case StatusWaiting:
		a.resolveWaiting()
	case StatusSuccessful, StatusFailed:
		if a.repeat {
			a.status = StatusCreated
		}
	}
}

// resolveWaiting evaluates the success predicate for a non-proxy action.
// A proxy-bound action only leaves waiting via its proxy's Notify
// callback, so this is a no-op when a proxy is bound.
func (a *Action) resolveWaiting() {
	if a.proxy != nil {
		return
	}
	if a.predicate != nil && a.predicate() {
		a.status = StatusSuccessful
	} else {
		a.status = StatusFailed
	}
}

// notifyArrived is called by the bound Proxy once its callback has run; it
// advances the action from pending/waiting to waiting, which is the only
// state a proxy-bound action resolves to outside of reset-for-retry (spec
// section 4.8: the success predicate evaluation is gated to non-proxy
// actions only).
func (a *Action) notifyArrived() {
	a.status = StatusWaiting
}
