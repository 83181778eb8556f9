package connectors

import (
	"net"

	"proxyrobots/internal/connio"
)

// Pusher is a write-only handle on the server's pull channel. Errors are
// surfaced to the caller but never retried here (spec section 4.2); retry
// policy belongs to the Engine's repeat flag.
type Pusher struct {
	conn net.Conn
}

func NewPusher(addr string) (*Pusher, error) {
	conn, err := net.Dial("tcp", stripScheme(addr))
	if err != nil {
		return nil, err
	}
	return &Pusher{conn: conn}, nil
}

func (p *Pusher) Write(payload []byte) error {
	return connio.WriteFrame(p.conn, payload)
}

func (p *Pusher) Close() error {
	return p.conn.Close()
}
