package domain

// State is the externally visible state of a frame reader.
// Payload accumulation happens inside AwaitHeader processing and is not a
// separate state.
type State int

const (
	StateAwaitHeader State = iota
	StateTerminated
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateAwaitHeader:
		return "AwaitHeader"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
