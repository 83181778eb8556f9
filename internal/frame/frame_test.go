package frame

import (
	"bytes"
	"errors"
	"testing"

	"proxyrobots/shared"
)

func TestSplitEncodeRoundTrip(t *testing.T) {
	raw := []byte("real_951 Input {\"move\":{\"left\":0.5}}")
	f, err := Split(raw)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if f.RoutingID != "real_951" || f.MessageType != "Input" {
		t.Fatalf("unexpected fields: %+v", f)
	}
	if string(f.Payload) != `{"move":{"left":0.5}}` {
		t.Fatalf("unexpected payload: %q", f.Payload)
	}
	if !bytes.Equal(f.Encode(), raw) {
		t.Fatalf("encode did not round-trip: %q", f.Encode())
	}
}

func TestSplitOnlyConsumesTwoSeparators(t *testing.T) {
	raw := []byte("r1 Input payload with spaces in it")
	f, err := Split(raw)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if string(f.Payload) != "payload with spaces in it" {
		t.Fatalf("payload should retain embedded spaces verbatim, got %q", f.Payload)
	}
}

func TestSplitMalformed(t *testing.T) {
	_, err := Split([]byte("onlyonefield"))
	if !errors.Is(err, shared.ErrFrameMalformed) {
		t.Fatalf("expected ErrFrameMalformed, got %v", err)
	}

	_, err = Split([]byte("two fields"))
	if !errors.Is(err, shared.ErrFrameMalformed) {
		t.Fatalf("expected ErrFrameMalformed for two fields, got %v", err)
	}
}
