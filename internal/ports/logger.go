package ports

import "github.com/bft-labs/framepipe/pkg/log"

// Logger is the structured logger used by the reader.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field
