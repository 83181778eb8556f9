// Package registry is the compile-time mapping from message-type name to a
// constructor that yields an empty decoded payload container (spec
// section 4.1). MessageHub uses it to decide whether a frame is known and
// to parse it; unknown types are logged and dropped by the caller.
package registry

// Payload is a decoded message body. The wire format of the payload bytes
// themselves is fixed by an external schema (spec section 1); this repo
// only needs a constructor plus an unmarshal hook per type.
type Payload interface {
	UnmarshalPayload(raw []byte) error
}

// Constructor yields a freshly allocated, zero-value Payload for a message
// type.
type Constructor func() Payload

var types = map[string]Constructor{
	TypeRegister:   func() Payload { return &RegisterMessage{} },
	TypeRegistered: func() Payload { return &RegisteredMessage{} },
	TypeInput:      func() Payload { return &InputMessage{} },
}

// Lookup returns the constructor registered for messageType, and whether
// one was found.
func Lookup(messageType string) (Constructor, bool) {
	ctor, ok := types[messageType]
	return ctor, ok
}
