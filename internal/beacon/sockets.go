package beacon

import (
	"net"

	"proxyrobots/internal/collections"
)

// SocketPool pre-binds n non-blocking UDP sockets to ephemeral local
// ports at construction (spec section 4.11, named SocketsLister there).
// PopAvailable hands one out and moves it to the in-use set; exhaustion
// returns nothing. Destruction closes every socket in both sets.
type SocketPool struct {
	available *collections.Queue[*net.UDPConn]
	inUse     *collections.Set[*net.UDPConn]
}

// NewSocketPool binds n ephemeral UDP sockets up front. A bind failure
// partway through closes everything already bound and returns the error.
func NewSocketPool(n int) (*SocketPool, error) {
	p := &SocketPool{
		available: collections.NewQueue[*net.UDPConn](),
		inUse:     collections.NewSet[*net.UDPConn](),
	}
	for i := 0; i < n; i++ {
		conn, err := net.ListenUDP("udp", &net.UDPAddr{})
		if err != nil {
			p.Close()
			return nil, err
		}
		p.available.Enqueue(conn)
	}
	return p, nil
}

// PopAvailable returns one socket and marks it in-use, or nil if the pool
// is exhausted.
func (p *SocketPool) PopAvailable() *net.UDPConn {
	conn, ok := p.available.Dequeue()
	if !ok {
		return nil
	}
	p.inUse.Add(conn)
	return conn
}

// Count reports (available, in-use); their sum is constant until Close
// (spec section 8, socket pool conservation property).
func (p *SocketPool) Count() (available, inUse int) {
	return p.available.Size(), p.inUse.Len()
}

// Close closes every socket in both sets.
func (p *SocketPool) Close() {
	for {
		conn, ok := p.available.Dequeue()
		if !ok {
			break
		}
		conn.Close()
	}
	for _, conn := range p.inUse.Values() {
		conn.Close()
		p.inUse.Remove(conn)
	}
}
