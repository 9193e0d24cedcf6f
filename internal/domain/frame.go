package domain

// Frame is one complete payload read from the stream.
// The reader never retains Payload after handing the frame out.
type Frame struct {
	// Seq is the 1-based position of the frame among frames received by one reader.
	Seq uint64

	// TraceID correlates log records for this frame.
	TraceID string

	Width        int
	Height       int
	BitsPerPixel int

	Payload []byte
}

// Size returns the payload length in bytes.
func (f Frame) Size() int {
	return len(f.Payload)
}
