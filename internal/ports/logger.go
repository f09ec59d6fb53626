package ports

import "github.com/bft-labs/aisparser/pkg/log"

// Logger is the structured logging port used by the application layer.
type Logger = log.Logger

// Field is a single structured log attribute.
type Field = log.Field

// Field constructors re-exported for application code.
var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Uint64   = log.Uint64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
	MMSI     = log.MMSI
)
