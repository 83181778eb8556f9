package device

import (
	"fmt"
	"math"
	"net"
	"time"

	"proxyrobots/shared"
)

// UDPDevice drives a real robot over a UDP socket handed out by the
// socket pool. It learns the robot's address lazily from the first
// datagram it receives, then sends ASCII commands to that address (spec
// section 4.9, grounded on the original's HarpiDevice).
type UDPDevice struct {
	conn    *net.UDPConn
	address *net.UDPAddr
}

func NewUDP(conn *net.UDPConn) *UDPDevice {
	return &UDPDevice{conn: conn}
}

// Ready performs one receive with a 1 ms poll deadline; the first datagram
// that arrives fixes the peer address for all subsequent sends.
func (d *UDPDevice) Ready() bool {
	buf := make([]byte, 4096)
	d.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, addr, err := d.conn.ReadFromUDP(buf)
	if err == nil && n > 0 {
		if d.address == nil {
			shared.DebugPrint("udp device: first message from robot at %s", addr)
			d.address = addr
		}
	}
	return d.address != nil
}

// Move converts -1..1 floats to -255..255 ints by rounding, per spec
// section 6, and sends "move <left> <right>".
func (d *UDPDevice) Move(left, right float64) {
	if d.address == nil {
		shared.DebugPrint("udp device: move, not ready")
		return
	}
	l := int(math.Round(left * 255))
	r := int(math.Round(right * 255))
	d.send("move %d %d", l, r)
}

// Fire sends "fire <fire1> <fire2>)" — the trailing ")" is preserved
// verbatim, matching the upstream protocol exactly (spec section 6/9).
func (d *UDPDevice) Fire(fire1, fire2 bool) {
	if d.address == nil {
		shared.DebugPrint("udp device: fire, not ready")
		return
	}
	d.send("fire %d %d)", boolToInt(fire1), boolToInt(fire2))
}

func (d *UDPDevice) Stop() {
	d.Move(0, 0)
}

func (d *UDPDevice) Address() string {
	if d.address == nil {
		return ""
	}
	return d.address.String()
}

func (d *UDPDevice) send(format string, a, b int) {
	command := fmt.Sprintf(format, a, b)
	if _, err := d.conn.WriteToUDP([]byte(command), d.address); err != nil {
		shared.DebugError(err)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
