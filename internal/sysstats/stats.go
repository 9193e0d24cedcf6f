// Package sysstats prints a once-per-interval line of host statistics:
//
//	<uptime minutes> <load average x10> <wireless signal percent>
//
// Any value that cannot be read is printed as "-". The line format is the one
// consumed by the telemetry uplink, which maps "-" to zero.
package sysstats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/framepipe/pkg/log"
)

// Unavailable is printed in place of a value that could not be read.
const Unavailable = "-"

// CommandRunner runs an external command and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Config configures a Printer.
type Config struct {
	Interval time.Duration
	ProcRoot string
	IWConfig string
	Iface    string

	// CommandTimeout bounds a single wireless status query.
	CommandTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Interval:       time.Second,
		ProcRoot:       "/proc",
		IWConfig:       "/sbin/iwconfig",
		Iface:          "wlan0",
		CommandTimeout: 2 * time.Second,
	}
}

// Printer samples host statistics and writes them as text lines.
type Printer struct {
	cfg    Config
	out    io.Writer
	run    CommandRunner
	logger log.Logger
}

// NewPrinter creates a printer writing to out. A nil runner uses ExecRunner.
func NewPrinter(cfg Config, out io.Writer, run CommandRunner, logger log.Logger) *Printer {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.ProcRoot == "" {
		cfg.ProcRoot = def.ProcRoot
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = def.CommandTimeout
	}
	if run == nil {
		run = ExecRunner
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Printer{cfg: cfg, out: out, run: run, logger: logger}
}

// Run prints a line immediately and then once per interval until ctx is done.
func (p *Printer) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := fmt.Fprintln(p.out, p.Sample(ctx)); err != nil {
			return fmt.Errorf("write stats: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Sample gathers one stats line.
func (p *Printer) Sample(ctx context.Context) string {
	return strings.Join([]string{p.uptime(), p.loadAvg(), p.wlanSignal(ctx)}, " ")
}

// uptime returns whole minutes since boot.
func (p *Printer) uptime() string {
	v, err := readFirstFloat(filepath.Join(p.cfg.ProcRoot, "uptime"))
	if err != nil {
		p.logger.Debug("uptime unavailable", log.Err(err))
		return Unavailable
	}
	return strconv.Itoa(int(math.Round(v / 60)))
}

// loadAvg returns the one minute load average times ten.
func (p *Printer) loadAvg() string {
	v, err := readFirstFloat(filepath.Join(p.cfg.ProcRoot, "loadavg"))
	if err != nil {
		p.logger.Debug("load average unavailable", log.Err(err))
		return Unavailable
	}
	return strconv.Itoa(int(math.Round(v * 10)))
}

var linkQuality = regexp.MustCompile(`Link Quality=(\d+)/(\d+)`)

// wlanSignal returns the link quality of the wireless interface in percent.
func (p *Printer) wlanSignal(ctx context.Context) string {
	if p.cfg.IWConfig == "" {
		return Unavailable
	}
	if _, err := os.Stat(p.cfg.IWConfig); err != nil {
		return Unavailable
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.CommandTimeout)
	defer cancel()

	out, err := p.run(ctx, p.cfg.IWConfig, p.cfg.Iface)
	if err != nil {
		p.logger.Debug("wireless status failed", log.Err(err), log.String("iface", p.cfg.Iface))
		return Unavailable
	}
	pct, err := ParseLinkQuality(out)
	if err != nil {
		p.logger.Debug("wireless status unparsable", log.Err(err))
		return Unavailable
	}
	return strconv.Itoa(pct)
}

var errNoLinkQuality = errors.New("no link quality in output")

// ParseLinkQuality extracts "Link Quality=q/max" from iwconfig output and
// returns round(q/max*100).
func ParseLinkQuality(out []byte) (int, error) {
	m := linkQuality.FindSubmatch(out)
	if m == nil {
		return 0, errNoLinkQuality
	}
	q, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return 0, err
	}
	scale, err := strconv.ParseFloat(string(m[2]), 64)
	if err != nil {
		return 0, err
	}
	if scale == 0 {
		return 0, fmt.Errorf("link quality max is zero")
	}
	return int(math.Round(q / scale * 100)), nil
}

func readFirstFloat(path string) (float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(b))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%s: empty", path)
	}
	return strconv.ParseFloat(fields[0], 64)
}
