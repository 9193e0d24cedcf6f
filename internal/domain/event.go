package domain

import "fmt"

// EventKind identifies what happened in the reader.
type EventKind int

const (
	EventReady EventKind = iota
	EventFrameSizeAnnounced
	EventFrameReceived
	EventDesync
	EventTerminated
)

func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventFrameSizeAnnounced:
		return "frame_size_announced"
	case EventFrameReceived:
		return "frame_received"
	case EventDesync:
		return "desync"
	case EventTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// DesyncKind names the marker that failed to match.
type DesyncKind int

const (
	DesyncNone DesyncKind = iota
	DesyncMarkerA
	DesyncMarkerZ
)

// Marker returns the marker letter, "" for DesyncNone.
func (d DesyncKind) Marker() string {
	switch d {
	case DesyncMarkerA:
		return "A"
	case DesyncMarkerZ:
		return "Z"
	default:
		return ""
	}
}

// Event is one observable step of the reader.
type Event struct {
	Kind EventKind

	// Size is the announced payload size for EventFrameSizeAnnounced.
	Size int

	// Desync and Byte describe an EventDesync. Byte is only meaningful for DesyncMarkerA.
	Desync DesyncKind
	Byte   byte

	// Frame is set for EventFrameReceived.
	Frame *Frame
}

func ReadyEvent() Event      { return Event{Kind: EventReady} }
func TerminatedEvent() Event { return Event{Kind: EventTerminated} }

func FrameSizeEvent(size int) Event {
	return Event{Kind: EventFrameSizeAnnounced, Size: size}
}

func FrameReceivedEvent(f *Frame) Event {
	return Event{Kind: EventFrameReceived, Size: f.Size(), Frame: f}
}

func DesyncEvent(kind DesyncKind, b byte) Event {
	return Event{Kind: EventDesync, Desync: kind, Byte: b}
}

// StatusLine renders the event in the status line vocabulary read by
// supervising processes.
func (e Event) StatusLine() string {
	switch e.Kind {
	case EventReady:
		return "ready"
	case EventFrameSizeAnnounced:
		return fmt.Sprintf("reading %d bytes", e.Size)
	case EventFrameReceived:
		return fmt.Sprintf("read: %d", e.Size)
	case EventDesync:
		if e.Desync == DesyncMarkerA {
			return fmt.Sprintf("unexpected input (A): %d", e.Byte)
		}
		return "unexpected input (Z)"
	case EventTerminated:
		return "exiting"
	default:
		return ""
	}
}
