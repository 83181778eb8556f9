// Package shared's network and resource-cleanup helpers.
package shared

import (
	"net"
	"reflect"
	"sync"
)

// LocalIPv4Broadcasts returns the IPv4 broadcast address of every active,
// non-loopback local interface, used by discovery (spec section 4.3) to
// enumerate candidate probe targets.
func LocalIPv4Broadcasts() []net.IP {
	var broadcasts []net.IP

	interfaces, err := net.Interfaces()
	if err != nil {
		return broadcasts
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP.To4()
			if ip == nil || ip.IsLoopback() {
				continue
			}

			mask := ipNet.Mask
			bcast := make(net.IP, len(ip))
			for i := range ip {
				bcast[i] = ip[i] | ^mask[i]
			}
			broadcasts = append(broadcasts, bcast)
		}
	}

	return broadcasts
}

// channelCloseMutex serializes concurrent close attempts across callers.
var channelCloseMutex sync.Mutex

// SafeClose closes closer if it has a Close() error method, logging (not
// panicking) on failure; channels are closed idempotently via
// SafeCloseChannel. nil is a safe no-op.
func SafeClose(closer interface{}) {
	if closer == nil {
		return
	}

	if c, ok := closer.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			DebugPrint("error closing resource: %v", err)
		}
		return
	}

	SafeCloseChannel(closer)
}

// SafeCloseChannel closes ch (any channel type, via reflection) without
// panicking if it is already closed.
func SafeCloseChannel(ch interface{}) {
	if ch == nil {
		return
	}

	val := reflect.ValueOf(ch)
	if val.Kind() != reflect.Chan {
		DebugPrint("SafeCloseChannel: not a channel, type: %T", ch)
		return
	}

	channelCloseMutex.Lock()
	defer channelCloseMutex.Unlock()

	if !isChannelClosed(val) {
		val.Close()
	}
}

func isChannelClosed(ch reflect.Value) bool {
	if ch.Kind() != reflect.Chan {
		return true
	}

	chosen, _, ok := reflect.Select([]reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: ch},
		{Dir: reflect.SelectDefault},
	})

	return chosen == 0 && !ok
}
