package domain

import "errors"

// Errors returned by the reader and its adapters. Check them with errors.Is.
var (
	// ErrTerminated is returned when Run is called on a reader that already stopped.
	ErrTerminated = errors.New("framepipe: reader terminated")

	// ErrPayloadTruncated is returned when the stream ends before a payload is complete.
	ErrPayloadTruncated = errors.New("framepipe: payload truncated")

	// ErrStalled is returned when a byte source keeps answering reads with no data.
	ErrStalled = errors.New("framepipe: byte source stalled")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("framepipe: invalid configuration")
)
