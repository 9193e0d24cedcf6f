package ports

import "github.com/bft-labs/framepipe/internal/domain"

// FrameHandler consumes complete frames. The handler owns frame.Payload.
type FrameHandler interface {
	HandleFrame(frame domain.Frame) error
}

// Observer is notified of every reader event before its status line is emitted.
// Implementations must not block.
type Observer interface {
	Observe(event domain.Event)
}
