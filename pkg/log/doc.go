// Package log provides the logging abstraction used by curvemark components.
//
// Components log through the [Logger] interface so the analysis core never
// depends on a concrete logging library. A zerolog adapter and a discarding logger
// are provided:
//
//	logger := log.FromZerolog(zerolog.New(os.Stderr))
//	logger.Info("cycle complete", log.Int("flagged", 3))
//
// Use [Discard] where output is not wanted:
//
//	svc, err := curvemark.New(cfg, curvemark.WithLogger(log.Discard))
package log
