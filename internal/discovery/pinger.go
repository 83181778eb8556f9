package discovery

import (
	"time"

	"proxyrobots/shared"
)

// Event is what the pinger puts on its outbound channel: either a fresh
// endpoint triple, or Lost=true meaning the server is no longer reachable
// (spec section 2/4.4).
type Event struct {
	Endpoints Endpoints
	Lost      bool
}

// Pinger is the broadcast pinger background worker (spec section 4.4): in
// state A (not connected) it runs a full discovery cycle every sleep tick;
// in state B (connected) it sends one short probe per tick and falls back
// to state A on failure.
type Pinger struct {
	port    int
	sleep   time.Duration
	timeout time.Duration
	retries int

	events chan Event
	stop   chan struct{}
	done   chan struct{}
}

func NewPinger(port int, sleep, timeout time.Duration, retries int) *Pinger {
	return &Pinger{
		port:    port,
		sleep:   sleep,
		timeout: timeout,
		retries: retries,
		events:  make(chan Event, 8),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Events is the single-producer/single-consumer channel the wrapper drains
// every tick (spec section 5).
func (p *Pinger) Events() <-chan Event {
	return p.events
}

// Run executes the pinger's state machine until Stop is called. Intended
// to be run in its own goroutine, e.g. via errgroup.
func (p *Pinger) Run() {
	defer close(p.done)

	connected := false
	for {
		select {
		case <-p.stop:
			return
		case <-time.After(p.sleep):
		}

		if !connected {
			ep, err := Discover(p.port, p.retries, p.timeout)
			if err != nil {
				shared.DebugPrint("pinger: discovery still not found: %v", err)
				continue
			}
			if !p.emit(Event{Endpoints: ep}) {
				return
			}
			connected = true
			continue
		}

		// State B's liveness probe reuses the same broadcast discovery
		// mechanism with a single try and the short timeout; any reply
		// from any candidate address counts as "still reachable".
		if _, err := Discover(p.port, 1, p.timeout); err != nil {
			shared.DebugPrint("pinger: liveness probe failed: %v", err)
			if !p.emit(Event{Lost: true}) {
				return
			}
			connected = false
		}
	}
}

func (p *Pinger) emit(ev Event) bool {
	select {
	case p.events <- ev:
		return true
	case <-p.stop:
		return false
	}
}

// Stop signals the worker to release its socket and exit without blocking
// (spec section 4.4).
func (p *Pinger) Stop() {
	shared.SafeCloseChannel(p.stop)
	<-p.done
}
