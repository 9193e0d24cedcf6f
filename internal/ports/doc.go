// Package ports defines the interfaces that connect the frame reader to the
// outside world.
//
//   - [StatusSink]: receives one status line per reader event
//   - [FrameHandler]: consumes complete frames
//   - [Observer]: watches every reader event (metrics)
//   - [Logger]: structured logging
//
// The reader in internal/app depends only on these interfaces; concrete
// implementations live in internal/adapters and internal/metrics.
package ports
