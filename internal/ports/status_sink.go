package ports

// StatusSink receives status lines for a supervising process.
type StatusSink interface {
	// Emit writes one line (without terminator) and makes it visible to the
	// reader on the other side before returning.
	Emit(line string) error
}
