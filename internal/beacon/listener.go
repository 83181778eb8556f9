// Package beacon implements the two long-lived UDP workers that answer
// discovery probes and hand out ephemeral ports (spec sections 4.10/4.11):
// BroadcastListener and SocketPool.
package beacon

import (
	"net"
	"strconv"
	"time"

	"proxyrobots/internal/collections"
	"proxyrobots/shared"
)

const pollInterval = 50 * time.Millisecond

const goodbye = "Goodbye"

// BroadcastListener owns one UDP socket bound to the configured local
// port. Every inbound datagram pops one port off a shared FIFO and
// replies with its decimal ASCII value, or the "Goodbye" sentinel once
// the queue is empty (spec section 4.10).
type BroadcastListener struct {
	conn  *net.UDPConn
	ports *collections.Queue[int]
	stop  chan struct{}
	done  chan struct{}
}

// NewBroadcastListener binds the listening socket immediately; a bind
// failure is transport-fatal and returned to the caller.
func NewBroadcastListener(port int) (*BroadcastListener, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, err
	}
	return &BroadcastListener{
		conn:  conn,
		ports: collections.NewQueue[int](),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}, nil
}

// AddPort pushes one more port value onto the FIFO that's handed out to
// probing clients.
func (l *BroadcastListener) AddPort(port int) {
	l.ports.Enqueue(port)
}

// Run blocks until Stop is called, replying to every inbound datagram
// (spec section 4.10). Intended to run in its own goroutine.
func (l *BroadcastListener) Run() {
	defer close(l.done)

	buf := make([]byte, 4096)
	for {
		select {
		case <-l.stop:
			return
		default:
		}

		l.conn.SetReadDeadline(time.Now().Add(pollInterval))
		_, addr, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			continue
		}

		reply := l.nextReply()
		if _, err := l.conn.WriteToUDP([]byte(reply), addr); err != nil {
			shared.DebugError(err)
		}
	}
}

func (l *BroadcastListener) nextReply() string {
	if port, ok := l.ports.Dequeue(); ok {
		return strconv.Itoa(port)
	}
	return goodbye
}

// Stop signals the worker to release its socket and exit.
func (l *BroadcastListener) Stop() {
	shared.SafeCloseChannel(l.stop)
	<-l.done
	shared.SafeClose(l.conn)
}
