package protocol

import (
	"errors"
	"fmt"
)

const (
	// MarkerA opens every header.
	MarkerA byte = 'A'

	// MarkerZ closes every header.
	MarkerZ byte = 'Z'

	// HeaderLen is the encoded header size including both markers.
	HeaderLen = 6

	// UnitPixels is the number of pixels represented by one dimension unit.
	UnitPixels = 8

	// MaxDimension is the largest width or height a header can carry.
	MaxDimension = 255 * UnitPixels
)

// Header field offsets within an encoded header.
const (
	offMarkerA = iota
	offWidthUnit
	offHeightUnit
	offBitsPerPixel
	offRunFlag
	offMarkerZ
)

var (
	ErrShortHeader   = errors.New("protocol: short header")
	ErrBadMarkerA    = errors.New("protocol: unexpected marker A")
	ErrBadMarkerZ    = errors.New("protocol: unexpected marker Z")
	ErrBadDimension  = errors.New("protocol: dimension not encodable")
	ErrPayloadLength = errors.New("protocol: payload length does not match header")
)

// Header is the decoded form of the six byte frame header.
type Header struct {
	WidthUnit    uint8
	HeightUnit   uint8
	BitsPerPixel uint8
	RunFlag      uint8
}

// Width returns the frame width in pixels.
func (h Header) Width() int { return int(h.WidthUnit) * UnitPixels }

// Height returns the frame height in pixels.
func (h Header) Height() int { return int(h.HeightUnit) * UnitPixels }

// Continue reports whether a payload follows the header.
// A zero RunFlag is a request to stop.
func (h Header) Continue() bool { return h.RunFlag != 0 }

// PayloadSize returns the number of payload bytes that follow the header.
func (h Header) PayloadSize() int {
	return PayloadSize(h.WidthUnit, h.HeightUnit, h.BitsPerPixel)
}

// PayloadSize computes floor(width*height*bpp/8) for the given header units.
// Fractional byte counts are truncated.
func PayloadSize(widthUnit, heightUnit, bitsPerPixel uint8) int {
	width := int(widthUnit) * UnitPixels
	height := int(heightUnit) * UnitPixels
	return width * height * int(bitsPerPixel) / 8
}

// String implements fmt.Stringer.
func (h Header) String() string {
	return fmt.Sprintf("%dx%dx%d run=%d", h.Width(), h.Height(), h.BitsPerPixel, h.RunFlag)
}

// Encode returns the wire form of h.
func (h Header) Encode() []byte {
	return h.AppendTo(make([]byte, 0, HeaderLen))
}

// AppendTo appends the wire form of h to b.
func (h Header) AppendTo(b []byte) []byte {
	return append(b, MarkerA, h.WidthUnit, h.HeightUnit, h.BitsPerPixel, h.RunFlag, MarkerZ)
}

// DecodeHeader parses the first HeaderLen bytes of b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, ErrShortHeader
	}
	if b[offMarkerA] != MarkerA {
		return Header{}, fmt.Errorf("%w: %d", ErrBadMarkerA, b[offMarkerA])
	}
	if b[offMarkerZ] != MarkerZ {
		return Header{}, fmt.Errorf("%w: %d", ErrBadMarkerZ, b[offMarkerZ])
	}
	return Header{
		WidthUnit:    b[offWidthUnit],
		HeightUnit:   b[offHeightUnit],
		BitsPerPixel: b[offBitsPerPixel],
		RunFlag:      b[offRunFlag],
	}, nil
}

// HeaderFor builds a continuing header for a frame of the given pixel size
// whose payload is payloadLen bytes long. Dimensions are truncated to a
// multiple of UnitPixels and the bit depth is derived from the payload
// length the way capture pipelines report it.
func HeaderFor(width, height, payloadLen int) (Header, error) {
	if width < UnitPixels || height < UnitPixels || width > MaxDimension || height > MaxDimension {
		return Header{}, fmt.Errorf("%w: %dx%d", ErrBadDimension, width, height)
	}
	bpp := payloadLen * 8 / (width * height)
	if bpp > 255 {
		return Header{}, fmt.Errorf("%w: %d bits per pixel", ErrBadDimension, bpp)
	}
	return Header{
		WidthUnit:    uint8(width >> 3),
		HeightUnit:   uint8(height >> 3),
		BitsPerPixel: uint8(bpp),
		RunFlag:      1,
	}, nil
}

// StopHeader returns the header that ends a stream.
func StopHeader() Header {
	return Header{}
}
