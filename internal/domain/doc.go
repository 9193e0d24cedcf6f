// Package domain holds the entities the frame reader works with.
//
// It has no dependencies on infrastructure (files, HTTP, logging) and is shared
// by the reader, its adapters and the public facade.
//
//   - [Frame]: one fully accumulated payload with its geometry
//   - [Event]: one observable step of the reader, rendered as a status line
//   - [State]: the reader's externally visible state
package domain
