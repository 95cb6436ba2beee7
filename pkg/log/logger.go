package log

import "time"

// Logger is the structured logger every curvemark component writes through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// String creates a string field, such as a frame id or publisher name.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field, such as a pose or marker count.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Ints logs pose indices, for example the degenerate points of a path.
func Ints(key string, value []int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field, used for monotonic counters like dropped paths.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field, such as a curvature or path length.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Duration creates a duration field, rendered by the adapter's duration format.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err attaches err under the "error" key. A nil error is logged as null.
func Err(err error) Field { return Field{Key: "error", Value: err} }
