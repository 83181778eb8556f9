package connectors

import (
	"bufio"
	"fmt"
	"net"

	"proxyrobots/shared"
)

// AdminEndpoint binds a reply socket on a configured local port (spec
// section 4.2). Its read is non-blocking; its write is best-effort and
// logged, never fatal, on failure.
type AdminEndpoint struct {
	listener net.Listener
	incoming chan adminRequest
	done     chan struct{}
}

type adminRequest struct {
	text  string
	reply chan string
}

// NewAdminEndpoint binds addr (e.g. ":9010") and starts accepting
// connections. A bind failure is transport-fatal (spec section 7).
func NewAdminEndpoint(addr string) (*AdminEndpoint, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	e := &AdminEndpoint{
		listener: ln,
		incoming: make(chan adminRequest, 16),
		done:     make(chan struct{}),
	}
	go e.acceptLoop()
	return e, nil
}

func (e *AdminEndpoint) acceptLoop() {
	for {
		conn, err := e.listener.Accept()
		if err != nil {
			return
		}
		go e.serveConn(conn)
	}
}

// serveConn reads request lines and forwards them to Read's consumer.
// Writing a reply happens on its own goroutine per request so that an
// unanswered request (spec section 8: "Unknown admin command → no reply is
// written") never stalls reading the connection's next line.
func (e *AdminEndpoint) serveConn(conn net.Conn) {
	defer shared.SafeClose(conn)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		reply := make(chan string, 1)
		req := adminRequest{text: scanner.Text(), reply: reply}

		select {
		case e.incoming <- req:
		case <-e.done:
			return
		}

		go func() {
			select {
			case line, ok := <-reply:
				if ok {
					if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
						shared.DebugError(fmt.Errorf("admin endpoint: reply write failed: %w", err))
					}
				}
			case <-e.done:
			}
		}()
	}
}

// Read returns the next pending request's text, without blocking, plus a
// Respond function that writes exactly one reply line back to the peer
// that sent it. ok is false if nothing is currently pending.
func (e *AdminEndpoint) Read() (text string, respond func(string), ok bool) {
	select {
	case req := <-e.incoming:
		return req.text, func(line string) {
			req.reply <- line
			close(req.reply)
		}, true
	default:
		return "", nil, false
	}
}

// Close stops accepting connections and releases the listener.
func (e *AdminEndpoint) Close() error {
	shared.SafeCloseChannel(e.done)
	return e.listener.Close()
}
