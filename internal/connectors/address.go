// Package connectors implements the four thin transport handles from spec
// section 4.2: Subscriber (non-blocking read), Pusher (write), Replier
// (paired write/read), and AdminEndpoint (bound reply socket). Each wraps
// exactly one internal/connio socket with LINGER-equivalent semantics: on
// Close, buffered data is not waited on, so shutdown stays prompt even when
// peers are gone (net.Conn's default behavior on a background goroutine
// read already gives us that without an explicit linger option).
package connectors

import "strings"

// stripScheme removes a "tcp://" prefix from an endpoint URL, since
// discovery hands back addresses in that form (spec section 6).
func stripScheme(addr string) string {
	return strings.TrimPrefix(addr, "tcp://")
}
