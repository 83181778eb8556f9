// Package discovery implements the broadcast client (spec section 4.3): it
// sends a UDP probe on each candidate broadcast address and decodes the
// reply's tagged-length-value endpoint record.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"proxyrobots/shared"
)

// Endpoints is the triple produced by discovery and consumed by
// MessageHub construction (spec section 3).
type Endpoints struct {
	Push      string
	Subscribe string
	Reply     string
}

const probeByte = '1' // spec section 6: "the single ASCII byte 1"

const (
	tagPush      = 0xA0
	tagSubscribe = 0xA1
	tagReply     = 0xA2
)

// Discover iterates every local IPv4 broadcast address in reverse
// enumeration order (spec section 4.3), sending up to retries probes per
// address with the given per-try timeout. It returns shared.ErrServerNotFound,
// never a transport error, if nothing answers.
func Discover(port int, retries int, timeout time.Duration) (Endpoints, error) {
	broadcasts := shared.LocalIPv4Broadcasts()

	for i := len(broadcasts) - 1; i >= 0; i-- {
		target := &net.UDPAddr{IP: broadcasts[i], Port: port}
		for try := 0; try < retries; try++ {
			ep, ok, err := probe(target, timeout)
			if err != nil {
				shared.DebugPrint("discovery probe to %s failed: %v", target, err)
				continue
			}
			if ok {
				return ep, nil
			}
		}
	}

	return Endpoints{}, shared.ErrServerNotFound
}

// broadcastListenConfig enables SO_BROADCAST on the probe socket before it's
// bound, matching the original's explicit setsockopt(SOL_SOCKET,
// SO_BROADCAST, 1) (original_source/orwell/common/broadcast.py). Without
// it, sendto to a broadcast address fails with EACCES on Linux and every
// probe silently errors.
var broadcastListenConfig = net.ListenConfig{
	Control: func(_, _ string, c syscall.RawConn) error {
		var sockErr error
		if err := c.Control(func(fd uintptr) {
			sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
		}); err != nil {
			return err
		}
		return sockErr
	},
}

func probe(target *net.UDPAddr, timeout time.Duration) (Endpoints, bool, error) {
	packetConn, err := broadcastListenConfig.ListenPacket(context.Background(), "udp4", ":0")
	if err != nil {
		return Endpoints{}, false, err
	}
	conn := packetConn.(*net.UDPConn)
	defer conn.Close()

	if _, err := conn.WriteTo([]byte{probeByte}, target); err != nil {
		return Endpoints{}, false, err
	}

	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return Endpoints{}, false, err
	}

	buf := make([]byte, 512)
	n, peer, err := conn.ReadFrom(buf)
	if err != nil {
		if ne, isNetErr := err.(net.Error); isNetErr && ne.Timeout() {
			return Endpoints{}, false, nil
		}
		return Endpoints{}, false, err
	}

	senderIP := peer.(*net.UDPAddr).IP.String()
	ep, decodeErr := Decode(buf[:n], senderIP)
	if decodeErr != nil {
		return Endpoints{}, false, decodeErr
	}
	return ep, true, nil
}

// Decode parses a tag-length-value reply: tag 0xA0 then a 1-byte length
// then the puller address, tag 0xA1 then length then publisher address,
// tag 0xA2 then length then replier address (spec section 4.3/6). The
// literal '*' in any address is substituted with senderIP.
func Decode(raw []byte, senderIP string) (Endpoints, error) {
	var ep Endpoints

	i := 0
	for i < len(raw) {
		tag := raw[i]
		i++
		if i >= len(raw) {
			return Endpoints{}, fmt.Errorf("discovery decode: truncated length for tag 0x%02x", tag)
		}
		length := int(raw[i])
		i++
		if i+length > len(raw) {
			return Endpoints{}, fmt.Errorf("discovery decode: truncated value for tag 0x%02x", tag)
		}
		value := substituteIP(string(raw[i:i+length]), senderIP)
		i += length

		switch tag {
		case tagPush:
			ep.Push = value
		case tagSubscribe:
			ep.Subscribe = value
		case tagReply:
			ep.Reply = value
		default:
			return Endpoints{}, fmt.Errorf("discovery decode: unknown tag 0x%02x", tag)
		}
	}

	if ep.Push == "" || ep.Subscribe == "" || ep.Reply == "" {
		return Endpoints{}, errors.New("discovery decode: incomplete endpoint triple")
	}
	return ep, nil
}

func substituteIP(addr, senderIP string) string {
	out := make([]byte, 0, len(addr)+len(senderIP))
	for i := 0; i < len(addr); i++ {
		if addr[i] == '*' {
			out = append(out, senderIP...)
			continue
		}
		out = append(out, addr[i])
	}
	return string(out)
}
