// Package hub implements MessageHub and its wrappers (spec sections
// 4.5/4.6): the owner of the three server-facing connectors, the inbound
// dispatch loop, and the outbound buffer-and-flush.
package hub

import (
	"fmt"

	"proxyrobots/internal/connectors"
	"proxyrobots/internal/discovery"
	"proxyrobots/internal/frame"
	"proxyrobots/internal/registry"
	"proxyrobots/shared"
)

// Listener is notified of frames whose (message_type, routing_id) matches
// its registration.
type Listener interface {
	Notify(messageType, routingID string, payload registry.Payload) error
}

type registration struct {
	routingID string
	listener  Listener
}

// FrameReader and FrameWriter narrow connectors.Subscriber/Pusher down to
// what Step needs, exported as a seam so tests (in this package or
// robot/admin package tests) can exercise dispatch/flush with in-memory
// doubles instead of real sockets.
type FrameReader interface {
	Read() ([]byte, bool)
}

type FrameWriter interface {
	Write(payload []byte) error
}

type Closer interface {
	Close() error
}

// MessageHub owns the subscriber/pusher/replier connectors, routes inbound
// frames to registered listeners, and buffers outbound frames for the next
// flush (spec section 4.5). Confined to the Program tick goroutine (spec
// section 5): not safe for concurrent use, deliberately un-locked.
type MessageHub struct {
	sub     FrameReader
	push    FrameWriter
	reply   Closer
	entries map[string][]registration
	outbox  [][]byte

	closers []Closer
}

// NewFromConnectors builds a MessageHub directly from already-constructed
// reader/writer/closers, bypassing endpoint dialing. Used by tests (and
// any future in-process transport) that need a MessageHub without real
// sockets.
func NewFromConnectors(sub FrameReader, push FrameWriter, closers ...Closer) *MessageHub {
	return &MessageHub{
		sub:     sub,
		push:    push,
		entries: make(map[string][]registration),
		closers: closers,
	}
}

// New dials all three endpoints. A dial failure here is transport-fatal
// (spec section 7) and is returned to the caller.
func New(endpoints discovery.Endpoints) (*MessageHub, error) {
	sub, err := connectors.NewSubscriber(endpoints.Subscribe)
	if err != nil {
		return nil, fmt.Errorf("message hub: subscriber: %w", err)
	}
	push, err := connectors.NewPusher(endpoints.Push)
	if err != nil {
		shared.SafeClose(sub)
		return nil, fmt.Errorf("message hub: pusher: %w", err)
	}
	reply, err := connectors.NewReplier(endpoints.Reply)
	if err != nil {
		shared.SafeClose(sub)
		shared.SafeClose(push)
		return nil, fmt.Errorf("message hub: replier: %w", err)
	}

	return &MessageHub{
		sub:     sub,
		push:    push,
		reply:   reply,
		entries: make(map[string][]registration),
		closers: []Closer{sub, push, reply},
	}, nil
}

// RegisterListener is idempotent with respect to (listener, routingID)
// within messageType (spec section 3/4.5's contract).
func (h *MessageHub) RegisterListener(l Listener, messageType, routingID string) {
	for _, r := range h.entries[messageType] {
		if r.listener == l && r.routingID == routingID {
			return
		}
	}
	h.entries[messageType] = append(h.entries[messageType], registration{routingID: routingID, listener: l})
}

// UnregisterListener removes one (listener, routingID) registration under
// messageType, if present.
func (h *MessageHub) UnregisterListener(l Listener, messageType, routingID string) {
	regs := h.entries[messageType]
	for i, r := range regs {
		if r.listener == l && r.routingID == routingID {
			h.entries[messageType] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}

// Post appends payload to the outbound buffer; it is flushed on the next
// Step.
func (h *MessageHub) Post(payload []byte) {
	h.outbox = append(h.outbox, payload)
}

// Step performs one non-blocking read (dispatching to matching listeners on
// a hit) followed by flushing every buffered outbound payload (spec
// section 4.5). A malformed frame is a fatal error returned to the caller;
// an unknown message type is logged and dropped, not an error.
func (h *MessageHub) Step() error {
	if raw, ok := h.sub.Read(); ok {
		if err := h.dispatch(raw); err != nil {
			return err
		}
	}

	for _, payload := range h.outbox {
		if err := h.push.Write(payload); err != nil {
			shared.DebugError(fmt.Errorf("message hub: push write failed: %w", err))
		}
	}
	h.outbox = h.outbox[:0]

	return nil
}

func (h *MessageHub) dispatch(raw []byte) error {
	f, err := frame.Split(raw)
	if err != nil {
		return err
	}

	ctor, known := registry.Lookup(f.MessageType)
	if !known {
		shared.DebugPrint("dropping frame with unknown message type %q", f.MessageType)
		return nil
	}

	payload := ctor()
	if err := payload.UnmarshalPayload(f.Payload); err != nil {
		shared.DebugError(fmt.Errorf("decoding %q payload: %w", f.MessageType, err))
		return nil
	}

	for _, r := range h.entries[f.MessageType] {
		if r.routingID != "" && r.routingID != f.RoutingID {
			continue
		}
		if err := r.listener.Notify(f.MessageType, f.RoutingID, payload); err != nil {
			return err
		}
	}
	return nil
}

// Close releases all owned connectors.
func (h *MessageHub) Close() error {
	for _, c := range h.closers {
		if c != nil {
			shared.SafeClose(c)
		}
	}
	return nil
}
