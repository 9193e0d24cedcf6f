package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriter_WriteFrame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	payload := bytes.Repeat([]byte{0xAB}, 384)
	if err := w.WriteFrame(24, 16, 8, payload); err != nil {
		t.Fatalf("WriteFrame() error: %v", err)
	}
	if err := w.WriteStop(); err != nil {
		t.Fatalf("WriteStop() error: %v", err)
	}

	out := buf.Bytes()
	if len(out) != HeaderLen+384+HeaderLen {
		t.Fatalf("wrote %d bytes, want %d", len(out), HeaderLen+384+HeaderLen)
	}
	h, err := DecodeHeader(out[:HeaderLen])
	if err != nil {
		t.Fatalf("DecodeHeader() error: %v", err)
	}
	if h.PayloadSize() != 384 || !h.Continue() {
		t.Errorf("header = %v, want 384 byte continuing frame", h)
	}
	if !bytes.Equal(out[HeaderLen:HeaderLen+384], payload) {
		t.Error("payload bytes differ")
	}
	stop, err := DecodeHeader(out[HeaderLen+384:])
	if err != nil {
		t.Fatalf("DecodeHeader(stop) error: %v", err)
	}
	if stop.Continue() {
		t.Error("trailing header continues, want stop")
	}
}

func TestWriter_WriteFrameRejects(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		bpp     int
		payload int
		wantErr error
	}{
		{"unaligned width", 20, 16, 8, 320, ErrBadDimension},
		{"too wide", 4096, 16, 8, 0, ErrBadDimension},
		{"bpp overflow", 8, 8, 256, 0, ErrBadDimension},
		{"short payload", 24, 16, 8, 383, ErrPayloadLength},
		{"long payload", 24, 16, 8, 385, ErrPayloadLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewWriter(&buf).WriteFrame(tt.width, tt.height, tt.bpp, make([]byte, tt.payload))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("WriteFrame() error = %v, want %v", err, tt.wantErr)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes on rejected frame", buf.Len())
			}
		})
	}
}
