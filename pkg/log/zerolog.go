package log

import (
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter writes Logger calls to a zerolog.Logger.
type ZerologAdapter struct {
	zl zerolog.Logger
}

// FromZerolog wraps zl. Level filtering and output format are taken from zl.
func FromZerolog(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{zl: zl}
}

func (z *ZerologAdapter) Debug(msg string, fields ...Field) { write(z.zl.Debug(), msg, fields) }
func (z *ZerologAdapter) Info(msg string, fields ...Field)  { write(z.zl.Info(), msg, fields) }
func (z *ZerologAdapter) Warn(msg string, fields ...Field)  { write(z.zl.Warn(), msg, fields) }
func (z *ZerologAdapter) Error(msg string, fields ...Field) { write(z.zl.Error(), msg, fields) }

// Zerolog returns the wrapped logger.
func (z *ZerologAdapter) Zerolog() zerolog.Logger {
	return z.zl
}

func write(e *zerolog.Event, msg string, fields []Field) {
	// nil when the level is disabled
	if e == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case []int:
			e = e.Ints(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}
