// Package shared defines the proxy's sentinel errors, grouped by functional
// area per spec section 7's error taxonomy.
package shared

import "errors"

// Transport errors
//
// Transient conditions are not represented as errors at all (they are
// "no data" returns); these are the fatal ones.

// ErrTransportClosed indicates a connector's underlying socket failed to
// bind or connect at construction, or was closed out from under it.
var ErrTransportClosed = errors.New("transport connector closed or unavailable")

// Protocol errors

// ErrFrameMalformed indicates an envelope had fewer than three
// space-separated parts (spec section 4.5/7). MessageHub.Step returns it,
// and Program.Step passes it up, which ends the tick loop.
var ErrFrameMalformed = errors.New("malformed frame envelope")

// ErrUnknownMessageType indicates a frame's message type is not in the
// registry; logged and dropped, never fatal.
var ErrUnknownMessageType = errors.New("unknown message type")

// Proxy/Action errors

// ErrProxyFilterMismatch indicates a notify() call carried a
// (message_type, routing_id) that does not match the proxy's filter: a
// programmer error in the envelope producer, not retryable.
var ErrProxyFilterMismatch = errors.New("proxy filter mismatch on notify")

// Discovery errors

// ErrServerNotFound indicates discovery exhausted every candidate
// broadcast address without a reply; normal, not fatal (spec section 7).
var ErrServerNotFound = errors.New("server not found on any broadcast address")

// Admin errors

// ErrAdminUnknownCommand indicates a request line did not match any
// recognised admin command; the caller is expected to stay silent, not
// surface this to a peer (spec section 4.12).
var ErrAdminUnknownCommand = errors.New("unrecognised admin command")

// General errors

// ErrRobotNotFound indicates no robot is registered under the requested id.
var ErrRobotNotFound = errors.New("robot not found")
