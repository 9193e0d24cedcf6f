// Package framepipe reads a raw frame stream of the form
//
//	'A' W H BPP RUN 'Z' <payload>
//
// and reports progress as one status line per event.
//
// Example usage:
//
//	r, err := framepipe.New(framepipe.DefaultConfig(), os.Stdin, os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Run(); err != nil {
//	    log.Fatal(err)
//	}
package framepipe

import (
	"io"

	"github.com/bft-labs/framepipe/internal/adapters/sink"
	"github.com/bft-labs/framepipe/internal/app"
	"github.com/bft-labs/framepipe/internal/domain"
	"github.com/bft-labs/framepipe/internal/ports"
	"github.com/bft-labs/framepipe/pkg/log"
)

type (
	// Frame is one fully received frame.
	Frame = domain.Frame

	// Event is a single reader event; Event.StatusLine renders it.
	Event = domain.Event

	// State is the reader state.
	State = domain.State

	// ResyncPolicy selects how the reader recovers from a bad Z marker.
	ResyncPolicy = app.ResyncPolicy

	// FrameHandler receives each complete frame.
	FrameHandler = ports.FrameHandler

	// Observer receives every reader event.
	Observer = ports.Observer
)

const (
	ResyncRestart  = app.ResyncRestart
	ResyncScanForA = app.ResyncScanForA

	StateAwaitHeader = domain.StateAwaitHeader
	StateTerminated  = domain.StateTerminated
)

// ErrTerminated is returned by Run on a reader that has already terminated.
var ErrTerminated = domain.ErrTerminated

// Config holds the reader settings exposed to library users.
type Config struct {
	// Prefix is prepended to every status line.
	Prefix string

	// Resync is the bad-Z recovery policy (default: ResyncRestart).
	Resync ResyncPolicy

	// MaxEmptyReads bounds consecutive zero-byte reads. Zero uses the default
	// bound; negative disables it.
	MaxEmptyReads int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	rc := app.DefaultConfig()
	return Config{
		Resync:        rc.Resync,
		MaxEmptyReads: rc.MaxEmptyReads,
	}
}

func (c Config) readerConfig() app.Config {
	rc := app.DefaultConfig()
	rc.Resync = c.Resync
	if c.MaxEmptyReads != 0 {
		rc.MaxEmptyReads = c.MaxEmptyReads
	}
	return rc
}

// Option configures optional behavior of a Reader.
type Option func(*options)

type options struct {
	logger   log.Logger
	handler  FrameHandler
	observer Observer
}

// WithLogger sets a logger. If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFrameHandler sets a handler called synchronously for every complete frame.
func WithFrameHandler(h FrameHandler) Option {
	return func(o *options) {
		o.handler = h
	}
}

// WithObserver sets an observer called synchronously for every event.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// Reader reads frames from a byte source and writes status lines.
type Reader struct {
	*app.FrameReader
}

// New creates a Reader consuming src and writing status lines to status.
func New(cfg Config, src io.Reader, status io.Writer, opts ...Option) (*Reader, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rc := cfg.readerConfig()

	var statusSink ports.StatusSink
	if status != nil {
		statusSink = sink.NewLineSink(status, cfg.Prefix)
	}

	fr, err := app.NewFrameReader(rc, src, statusSink, o.logger, o.handler, o.observer)
	if err != nil {
		return nil, err
	}
	return &Reader{FrameReader: fr}, nil
}

// Run creates a Reader with default settings and runs it to completion.
func Run(src io.Reader, status io.Writer, opts ...Option) error {
	r, err := New(DefaultConfig(), src, status, opts...)
	if err != nil {
		return err
	}
	return r.Run()
}
