package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (CURVEMARK_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setFloatFromString("threshold", os.Getenv("CURVEMARK_THRESHOLD"), &cfg.Threshold); err != nil {
		return err
	}
	s.setBoolFromString("show-labels", os.Getenv("CURVEMARK_SHOW_LABELS"), &cfg.ShowLabels)
	s.setBoolFromString("show-radius", os.Getenv("CURVEMARK_SHOW_RADIUS"), &cfg.ShowRadius)
	s.setString("frame-id", os.Getenv("CURVEMARK_FRAME_ID"), &cfg.FrameID)

	if err := s.setFloatsFromString("sphere-color", os.Getenv("CURVEMARK_SPHERE_COLOR"), &cfg.SphereColor); err != nil {
		return err
	}
	if err := s.setFloatsFromString("text-color", os.Getenv("CURVEMARK_TEXT_COLOR"), &cfg.TextColor); err != nil {
		return err
	}
	if err := s.setFloatFromString("sphere-size", os.Getenv("CURVEMARK_SPHERE_SIZE"), &cfg.SphereSize); err != nil {
		return err
	}
	if err := s.setFloatFromString("text-size", os.Getenv("CURVEMARK_TEXT_SIZE"), &cfg.TextSize); err != nil {
		return err
	}
	if err := s.setFloatsFromString("text-offset", os.Getenv("CURVEMARK_TEXT_OFFSET"), &cfg.TextOffset); err != nil {
		return err
	}

	s.setString("source", os.Getenv("CURVEMARK_SOURCE"), &cfg.Source)
	s.setString("nats-url", os.Getenv("CURVEMARK_NATS_URL"), &cfg.NATSURL)
	s.setString("path-subject", os.Getenv("CURVEMARK_PATH_SUBJECT"), &cfg.PathSubject)
	s.setString("marker-subject", os.Getenv("CURVEMARK_MARKER_SUBJECT"), &cfg.MarkerSubject)
	s.setString("inbox-dir", os.Getenv("CURVEMARK_INBOX_DIR"), &cfg.InboxDir)
	s.setString("http-url", os.Getenv("CURVEMARK_HTTP_URL"), &cfg.HTTPURL)
	s.setString("snapshot-file", os.Getenv("CURVEMARK_SNAPSHOT_FILE"), &cfg.SnapshotFile)
	s.setString("plot-file", os.Getenv("CURVEMARK_PLOT_FILE"), &cfg.PlotFile)
	s.setString("metrics-addr", os.Getenv("CURVEMARK_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("log-level", os.Getenv("CURVEMARK_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("http-timeout", os.Getenv("CURVEMARK_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setBoolFromString("once", os.Getenv("CURVEMARK_ONCE"), &cfg.Once)

	return nil
}
