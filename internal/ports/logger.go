package ports

import "github.com/bft-labs/curvemark/pkg/log"

// Logger is the structured logger used by the application layer.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors, re-exported so app code only imports ports.
var (
	String   = log.String
	Int      = log.Int
	Ints     = log.Ints
	Uint64   = log.Uint64
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
)
