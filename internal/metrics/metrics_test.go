package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bft-labs/framepipe/internal/domain"
)

func TestCollector_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(Config{Registry: reg})

	frame := &domain.Frame{Seq: 1, Payload: make([]byte, 384)}
	events := []domain.Event{
		domain.ReadyEvent(),
		domain.DesyncEvent(domain.DesyncMarkerA, 'X'),
		domain.DesyncEvent(domain.DesyncMarkerA, 'Y'),
		domain.DesyncEvent(domain.DesyncMarkerZ, 0),
		domain.FrameSizeEvent(384),
		domain.FrameReceivedEvent(frame),
		domain.ReadyEvent(),
		domain.TerminatedEvent(),
	}
	for _, ev := range events {
		c.Observe(ev)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"frames", testutil.ToFloat64(c.frames), 1},
		{"payload bytes", testutil.ToFloat64(c.payloadBytes), 384},
		{"desync A", testutil.ToFloat64(c.desync.WithLabelValues("A")), 2},
		{"desync Z", testutil.ToFloat64(c.desync.WithLabelValues("Z")), 1},
		{"terminations", testutil.ToFloat64(c.terminations), 1},
	}
	for _, ck := range checks {
		if ck.got != ck.want {
			t.Errorf("%s = %v, want %v", ck.name, ck.got, ck.want)
		}
	}

	if n := testutil.CollectAndCount(c.frameSize); n != 1 {
		t.Errorf("frame size histogram series = %d, want 1", n)
	}
}

func TestServer_Routes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(Config{Namespace: "test", Registry: reg})
	c.Observe(domain.TerminatedEvent())

	ts := httptest.NewServer(NewServer(":0", reg).Handler)
	defer ts.Close()

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/metrics", http.StatusOK, "test_reader_terminations_total 1"},
		{"/healthz", http.StatusOK, "ok"},
		{"/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.contains != "" && !strings.Contains(string(body), tt.contains) {
				t.Errorf("body does not contain %q:\n%s", tt.contains, body)
			}
		})
	}
}
