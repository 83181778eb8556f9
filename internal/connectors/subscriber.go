package connectors

import (
	"net"

	"proxyrobots/internal/connio"
	"proxyrobots/shared"
)

// Subscriber is a non-blocking read handle on the server's publish channel.
// It subscribes to all topics implicitly: every frame the server posts is
// forwarded, and filtering by (message_type, routing_id) happens one layer
// up in the MessageHub.
type Subscriber struct {
	conn   net.Conn
	frames chan []byte
	done   chan struct{}
}

// NewSubscriber dials addr and starts the background reader. A dial failure
// is transport-fatal (spec section 7) and is returned to the caller.
func NewSubscriber(addr string) (*Subscriber, error) {
	conn, err := net.Dial("tcp", stripScheme(addr))
	if err != nil {
		return nil, err
	}

	s := &Subscriber{
		conn:   conn,
		frames: make(chan []byte, 256),
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *Subscriber) readLoop() {
	defer close(s.frames)
	for {
		raw, err := connio.ReadFrame(s.conn)
		if err != nil {
			return
		}
		select {
		case s.frames <- raw:
		case <-s.done:
			return
		}
	}
}

// Read returns the next buffered frame, if any, without blocking. ok is
// false when nothing is currently available ("no data", spec section 7).
func (s *Subscriber) Read() (raw []byte, ok bool) {
	select {
	case raw, ok = <-s.frames:
		return raw, ok
	default:
		return nil, false
	}
}

// Close releases the subscriber's socket.
func (s *Subscriber) Close() error {
	shared.SafeCloseChannel(s.done)
	return s.conn.Close()
}
