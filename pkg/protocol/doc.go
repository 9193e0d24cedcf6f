// Package protocol describes the raw frame stream wire format.
//
// A stream is a concatenation of frame units. Each unit starts with a fixed
// six byte header:
//
//	'A' WidthUnit HeightUnit BitsPerPixel RunFlag 'Z'
//
// Width and height are carried divided by 8 so they fit in one byte. When
// RunFlag is nonzero the header is followed by exactly PayloadSize bytes of
// raw pixel data; a zero RunFlag asks the consumer to stop and carries no
// payload.
//
// # Usage
//
// Producers write frames with a Writer:
//
//	w := protocol.NewWriter(os.Stdout)
//	if err := w.WriteFrame(640, 480, 8, pixels); err != nil {
//	    return err
//	}
//	if err := w.WriteStop(); err != nil {
//	    return err
//	}
//
// Consumers that already hold six header bytes can use DecodeHeader. The
// streaming state machine with resynchronization lives in the framepipe
// package.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package protocol
