package connectors

import (
	"net"
)

// Replier is MessageHub's third server-facing connector (spec section 2):
// a TCP connection to the server's reply socket. step() only drives the
// subscribe/push pair; Replier is kept open alongside them because
// MessageHub owns all three for the lifetime of the connection regardless
// of which ones the tick loop reads from.
type Replier struct {
	conn net.Conn
}

func NewReplier(addr string) (*Replier, error) {
	conn, err := net.Dial("tcp", stripScheme(addr))
	if err != nil {
		return nil, err
	}
	return &Replier{conn: conn}, nil
}

func (r *Replier) Close() error {
	return r.conn.Close()
}
