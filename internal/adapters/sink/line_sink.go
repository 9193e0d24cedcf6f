// Package sink writes reader status lines for a supervising process.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// LineSink implements ports.StatusSink on an io.Writer. Every line is flushed
// before Emit returns so a process reading the other end of a pipe sees it
// immediately.
type LineSink struct {
	mu     sync.Mutex
	w      *bufio.Writer
	prefix string
}

// NewLineSink creates a sink on w. prefix is prepended to every line; the
// historical consumer used "OD: ".
func NewLineSink(w io.Writer, prefix string) *LineSink {
	return &LineSink{w: bufio.NewWriter(w), prefix: prefix}
}

// Emit writes prefix + line + "\n" and flushes.
func (s *LineSink) Emit(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.w.WriteString(s.prefix)
	s.w.WriteString(line)
	s.w.WriteByte('\n')
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush status line: %w", err)
	}
	return nil
}
