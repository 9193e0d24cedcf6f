package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/framepipe/internal/domain"
	"github.com/bft-labs/framepipe/internal/ports"
	"github.com/bft-labs/framepipe/pkg/log"
	"github.com/bft-labs/framepipe/pkg/protocol"
)

// FrameReader consumes a raw frame stream and reports its progress as status
// lines. It is a single-threaded state machine; Run must not be called
// concurrently.
type FrameReader struct {
	cfg      Config
	src      io.Reader
	sink     ports.StatusSink
	logger   ports.Logger
	handler  ports.FrameHandler
	observer ports.Observer

	state   domain.State
	seq     uint64
	pending []byte
	srcErr  error
	one     [1]byte
	bo      *backoff

	sleep func(time.Duration)
}

// NewFrameReader creates a reader in StateAwaitHeader. logger, handler and
// observer may be nil.
func NewFrameReader(
	cfg Config,
	src io.Reader,
	sink ports.StatusSink,
	logger ports.Logger,
	handler ports.FrameHandler,
	observer ports.Observer,
) (*FrameReader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil || sink == nil {
		return nil, fmt.Errorf("%w: byte source and status sink are required", domain.ErrInvalidConfig)
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &FrameReader{
		cfg:      cfg,
		src:      src,
		sink:     sink,
		logger:   logger,
		handler:  handler,
		observer: observer,
		state:    domain.StateAwaitHeader,
		bo:       newBackoff(cfg.EmptyReadDelay, cfg.EmptyReadMaxDelay),
		sleep:    time.Sleep,
	}, nil
}

// State returns the current reader state.
func (r *FrameReader) State() domain.State {
	return r.state
}

// Frames returns the number of frames received so far.
func (r *FrameReader) Frames() uint64 {
	return r.seq
}

// Run processes frame units until the stream ends or a zero RunFlag arrives.
// Both end the loop with an "exiting" line and a nil error. Marker mismatches
// are reported and skipped. Run returns an error only when the source fails
// with something other than end-of-stream or the sink cannot be written.
func (r *FrameReader) Run() error {
	if r.state == domain.StateTerminated {
		return domain.ErrTerminated
	}

	r.logger.Info("frame reader started", log.String("resync", r.cfg.Resync.String()))

	err := r.emit(domain.ReadyEvent())
	for err == nil {
		var done bool
		done, err = r.step()
		if done {
			break
		}
	}
	return r.terminate(err)
}

// step consumes one frame unit: either a single mismatching byte, a header
// with a bad Z marker, a stop header, or a header plus its payload.
func (r *FrameReader) step() (done bool, err error) {
	b, err := r.readByte()
	if err != nil {
		return r.endOfStream(err, "marker A")
	}
	if b != protocol.MarkerA {
		r.logger.Debug("unexpected marker A", log.Byte("byte", b))
		return false, r.emit(domain.DesyncEvent(domain.DesyncMarkerA, b))
	}

	// W, H, BPP, RUN, Z
	var fields [protocol.HeaderLen - 1]byte
	for i := range fields {
		if fields[i], err = r.readByte(); err != nil {
			return r.endOfStream(err, "header")
		}
	}

	z := fields[len(fields)-1]
	if z != protocol.MarkerZ {
		r.logger.Debug("unexpected marker Z", log.Byte("byte", z))
		if err := r.emit(domain.DesyncEvent(domain.DesyncMarkerZ, z)); err != nil {
			return true, err
		}
		if r.cfg.Resync == ResyncScanForA {
			r.rescan(fields[:])
		}
		return false, nil
	}

	hdr := protocol.Header{
		WidthUnit:    fields[0],
		HeightUnit:   fields[1],
		BitsPerPixel: fields[2],
		RunFlag:      fields[3],
	}
	if !hdr.Continue() {
		r.logger.Info("stop requested by stream")
		return true, nil
	}

	size := hdr.PayloadSize()
	if err := r.emit(domain.FrameSizeEvent(size)); err != nil {
		return true, err
	}

	payload, err := r.accumulate(size)
	if err != nil {
		if isEnd(err) {
			r.logger.Warn("stream ended inside payload", log.Err(err), log.String("header", hdr.String()))
			return true, nil
		}
		return true, err
	}

	r.seq++
	frame := domain.Frame{
		Seq:          r.seq,
		TraceID:      uuid.New().String(),
		Width:        hdr.Width(),
		Height:       hdr.Height(),
		BitsPerPixel: int(hdr.BitsPerPixel),
		Payload:      payload,
	}
	if err := r.emit(domain.FrameReceivedEvent(&frame)); err != nil {
		return true, err
	}
	r.logger.Debug("frame received",
		log.Uint64("seq", frame.Seq),
		log.String("trace_id", frame.TraceID),
		log.Int("bytes", frame.Size()),
	)

	if r.handler != nil {
		if err := r.handler.HandleFrame(frame); err != nil {
			r.logger.Error("frame handler failed",
				log.Err(err),
				log.Uint64("seq", frame.Seq),
				log.String("trace_id", frame.TraceID),
			)
		}
	}

	return false, r.emit(domain.ReadyEvent())
}

// accumulate reads exactly size bytes into a fresh buffer, across as many
// short reads as the source needs.
func (r *FrameReader) accumulate(size int) ([]byte, error) {
	payload := make([]byte, size)
	got := 0
	for got < size {
		n, err := r.read(payload[got:])
		got += n
		if err != nil && got < size {
			return nil, fmt.Errorf("%w after %d of %d bytes: %w", domain.ErrPayloadTruncated, got, size, err)
		}
	}
	return payload, nil
}

// rescan looks for an 'A' among header bytes consumed after a bad Z marker
// and queues everything from it onward to be parsed again.
func (r *FrameReader) rescan(consumed []byte) {
	for i, b := range consumed {
		if b == protocol.MarkerA {
			r.logger.Debug("resync on marker A inside rejected header", log.Int("offset", i+1))
			r.unread(consumed[i:])
			return
		}
	}
}

// endOfStream maps a header read failure to the loop outcome.
func (r *FrameReader) endOfStream(err error, field string) (bool, error) {
	if isEnd(err) {
		if errors.Is(err, domain.ErrStalled) {
			r.logger.Warn("byte source stalled, treating as end of stream", log.String("awaiting", field))
		}
		return true, nil
	}
	return true, fmt.Errorf("read %s: %w", field, err)
}

// terminate emits the single "exiting" line and records the final state.
func (r *FrameReader) terminate(cause error) error {
	r.state = domain.StateTerminated
	err := r.emit(domain.TerminatedEvent())
	r.logger.Info("frame reader stopped", log.Uint64("frames", r.seq))
	if cause != nil {
		return cause
	}
	return err
}

func (r *FrameReader) emit(ev domain.Event) error {
	if r.observer != nil {
		r.observer.Observe(ev)
	}
	if err := r.sink.Emit(ev.StatusLine()); err != nil {
		return fmt.Errorf("emit %s: %w", ev.Kind, err)
	}
	return nil
}
