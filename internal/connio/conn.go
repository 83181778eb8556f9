// Package connio is the length-prefixed read/write primitive that stands
// in for the opaque message-transport library spec section 1 places out of
// scope ("the underlying message-transport library... treated as an opaque
// connector with read/write primitives"). No real Go ZeroMQ/nanomsg
// binding exists anywhere in the example pack, nor does the teacher's own
// go.mod carry one, so this is built directly on net.Conn.
package connio

import (
	"encoding/binary"
	"io"
)

// WriteFrame writes payload to w prefixed by a 4-byte big-endian length.
func WriteFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads one length-prefixed payload from r.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
