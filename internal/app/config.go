package app

import (
	"fmt"
	"time"

	"github.com/bft-labs/framepipe/internal/domain"
)

// ResyncPolicy decides where header parsing resumes after a bad Z marker.
type ResyncPolicy int

const (
	// ResyncRestart resumes at the byte after the bad Z marker. The five
	// header bytes already consumed are dropped.
	ResyncRestart ResyncPolicy = iota

	// ResyncScanForA looks for an 'A' among the consumed header bytes and
	// resumes parsing there, falling back to ResyncRestart when none is found.
	ResyncScanForA
)

func (p ResyncPolicy) String() string {
	switch p {
	case ResyncRestart:
		return "restart"
	case ResyncScanForA:
		return "scan"
	default:
		return "unknown"
	}
}

// ParseResyncPolicy parses the names produced by ResyncPolicy.String.
func ParseResyncPolicy(s string) (ResyncPolicy, error) {
	switch s {
	case "", "restart":
		return ResyncRestart, nil
	case "scan":
		return ResyncScanForA, nil
	default:
		return ResyncRestart, fmt.Errorf("%w: unknown resync policy %q", domain.ErrInvalidConfig, s)
	}
}

// DefaultMaxEmptyReads bounds consecutive reads that return no data and no error.
const DefaultMaxEmptyReads = 100

// Config tunes the frame reader.
type Config struct {
	Resync ResyncPolicy

	// MaxEmptyReads is how many consecutive (0, nil) reads are retried before
	// the source is considered ended. Negative means retry forever.
	MaxEmptyReads int

	// EmptyReadDelay and EmptyReadMaxDelay bound the backoff between those retries.
	EmptyReadDelay    time.Duration
	EmptyReadMaxDelay time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Resync:            ResyncRestart,
		MaxEmptyReads:     DefaultMaxEmptyReads,
		EmptyReadDelay:    DefaultEmptyReadDelay,
		EmptyReadMaxDelay: DefaultEmptyReadMaxDelay,
	}
}

// Validate checks the configuration and fills zero delays with defaults.
func (c *Config) Validate() error {
	if c.Resync != ResyncRestart && c.Resync != ResyncScanForA {
		return fmt.Errorf("%w: resync policy %d", domain.ErrInvalidConfig, c.Resync)
	}
	if c.EmptyReadDelay <= 0 {
		c.EmptyReadDelay = DefaultEmptyReadDelay
	}
	if c.EmptyReadMaxDelay < c.EmptyReadDelay {
		c.EmptyReadMaxDelay = c.EmptyReadDelay
	}
	return nil
}
