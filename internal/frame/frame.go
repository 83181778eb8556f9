// Package frame implements the three-field envelope crossing the
// subscribe/push channels (spec section 3/6): ASCII
// "routing_id SP message_type SP raw_bytes", split on the first two space
// bytes only, with the raw payload returned verbatim.
package frame

import (
	"bytes"
	"fmt"

	"proxyrobots/shared"
)

const separator = ' '

// Frame is the decoded envelope.
type Frame struct {
	RoutingID   string
	MessageType string
	Payload     []byte
}

// Split parses raw into a Frame. It returns shared.ErrFrameMalformed if raw
// has fewer than three space-separated parts.
func Split(raw []byte) (Frame, error) {
	i := bytes.IndexByte(raw, separator)
	if i < 0 {
		return Frame{}, fmt.Errorf("%w: missing routing_id separator", shared.ErrFrameMalformed)
	}
	rest := raw[i+1:]

	j := bytes.IndexByte(rest, separator)
	if j < 0 {
		return Frame{}, fmt.Errorf("%w: missing message_type separator", shared.ErrFrameMalformed)
	}

	return Frame{
		RoutingID:   string(raw[:i]),
		MessageType: string(rest[:j]),
		Payload:     rest[j+1:],
	}, nil
}

// Encode renders f back into its wire form.
func (f Frame) Encode() []byte {
	buf := make([]byte, 0, len(f.RoutingID)+len(f.MessageType)+len(f.Payload)+2)
	buf = append(buf, f.RoutingID...)
	buf = append(buf, separator)
	buf = append(buf, f.MessageType...)
	buf = append(buf, separator)
	buf = append(buf, f.Payload...)
	return buf
}
