package framepipe

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bft-labs/framepipe/internal/domain"
	"github.com/bft-labs/framepipe/pkg/protocol"
)

type frameCollector struct {
	frames []Frame
}

func (c *frameCollector) HandleFrame(f Frame) error {
	c.frames = append(c.frames, f)
	return nil
}

type eventCounter struct {
	kinds map[domain.EventKind]int
}

func (c *eventCounter) Observe(ev Event) {
	if c.kinds == nil {
		c.kinds = make(map[domain.EventKind]int)
	}
	c.kinds[ev.Kind]++
}

func TestNew_Options(t *testing.T) {
	var stream bytes.Buffer
	w := protocol.NewWriter(&stream)
	for i := 0; i < 3; i++ {
		if err := w.WriteFrame(16, 8, 4, bytes.Repeat([]byte{byte(i)}, 64)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	handler := &frameCollector{}
	observer := &eventCounter{}
	var status bytes.Buffer

	r, err := New(DefaultConfig(), &stream, &status, WithFrameHandler(handler), WithObserver(observer))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(handler.frames) != 3 {
		t.Fatalf("handled %d frames, want 3", len(handler.frames))
	}
	for i, f := range handler.frames {
		if f.Seq != uint64(i+1) || f.Width != 16 || f.Height != 8 || f.BitsPerPixel != 4 {
			t.Errorf("frame %d = %+v", i, f)
		}
		if f.Payload[0] != byte(i) {
			t.Errorf("frame %d payload[0] = %d", i, f.Payload[0])
		}
	}
	if got := observer.kinds[domain.EventFrameReceived]; got != 3 {
		t.Errorf("observed %d frames, want 3", got)
	}
	if got := strings.Count(status.String(), "exiting\n"); got != 1 {
		t.Errorf("exiting lines = %d, want 1", got)
	}
	if r.State() != StateTerminated {
		t.Errorf("State() = %s, want %s", r.State(), StateTerminated)
	}
	if err := r.Run(); !errors.Is(err, ErrTerminated) {
		t.Errorf("second Run() error = %v, want ErrTerminated", err)
	}
}

func TestNew_RequiresStatusWriter(t *testing.T) {
	if _, err := New(DefaultConfig(), strings.NewReader(""), nil); err == nil {
		t.Fatal("expected error without a status writer")
	}
}

func TestNew_ScanPolicy(t *testing.T) {
	// Bad Z marker whose consumed bytes contain a real header start.
	stream := []byte{'A', 'A', 1, 1, 8, 0, 'Z'}
	cfg := DefaultConfig()
	cfg.Resync = ResyncScanForA

	var status bytes.Buffer
	r, err := New(cfg, bytes.NewReader(stream), &status)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "ready\nunexpected input (Z)\nexiting\n"
	if status.String() != want {
		t.Errorf("status = %q, want %q", status.String(), want)
	}
}

func TestConfig_ReaderConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"zero value uses default bound", Config{}, DefaultConfig().MaxEmptyReads},
		{"explicit bound", Config{MaxEmptyReads: 5}, 5},
		{"negative disables bound", Config{MaxEmptyReads: -1}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.readerConfig().MaxEmptyReads; got != tt.want {
				t.Errorf("MaxEmptyReads = %d, want %d", got, tt.want)
			}
		})
	}
	if DefaultConfig().MaxEmptyReads == 0 {
		t.Fatal("default bound must be positive")
	}
}
