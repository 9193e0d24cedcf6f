package protocol

import (
	"fmt"
	"io"
)

// Writer emits frame units onto an io.Writer.
type Writer struct {
	w   io.Writer
	buf [HeaderLen]byte
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes a bare header. Callers that set a nonzero RunFlag must
// follow it with exactly h.PayloadSize() bytes.
func (w *Writer) WriteHeader(h Header) error {
	if _, err := w.w.Write(h.AppendTo(w.buf[:0])); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteFrame writes a continuing header for a width x height frame at bpp
// bits per pixel, followed by payload. The payload must be exactly the size
// the header announces.
func (w *Writer) WriteFrame(width, height, bpp int, payload []byte) error {
	if width < 0 || height < 0 || width > MaxDimension || height > MaxDimension || width%UnitPixels != 0 || height%UnitPixels != 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadDimension, width, height)
	}
	if bpp < 0 || bpp > 255 {
		return fmt.Errorf("%w: %d bits per pixel", ErrBadDimension, bpp)
	}
	h := Header{
		WidthUnit:    uint8(width / UnitPixels),
		HeightUnit:   uint8(height / UnitPixels),
		BitsPerPixel: uint8(bpp),
		RunFlag:      1,
	}
	if len(payload) != h.PayloadSize() {
		return fmt.Errorf("%w: have %d, header announces %d", ErrPayloadLength, len(payload), h.PayloadSize())
	}
	if err := w.WriteHeader(h); err != nil {
		return err
	}
	if _, err := w.w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// WriteStop writes the zero RunFlag header that ends a stream.
func (w *Writer) WriteStop() error {
	return w.WriteHeader(StopHeader())
}
