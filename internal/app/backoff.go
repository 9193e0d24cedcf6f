package app

import (
	"math/rand"
	"time"
)

// Default delays between retries of a read that returned no data.
const (
	DefaultEmptyReadDelay    = time.Millisecond
	DefaultEmptyReadMaxDelay = 100 * time.Millisecond
)

// backoff implements exponential backoff with jitter.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{
		initial: initial,
		max:     max,
		current: initial,
	}
}

// Next returns the delay to wait now and doubles the following one, capped at max.
func (b *backoff) Next() time.Duration {
	// ±20% jitter
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	d := time.Duration(float64(b.current) + jitter)

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return d
}

// Reset resets the backoff to the initial duration.
func (b *backoff) Reset() {
	b.current = b.initial
}
