package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations and pointers for
// values whose zero is meaningful, to make TOML friendly.
type FileConfig struct {
	Threshold   *float64  `toml:"threshold"`
	ShowLabels  *bool     `toml:"show_labels"`
	ShowRadius  *bool     `toml:"show_radius"`
	FrameID     string    `toml:"frame_id"`
	SphereColor []float64 `toml:"sphere_color"`
	TextColor   []float64 `toml:"text_color"`
	SphereSize  *float64  `toml:"sphere_size"`
	TextSize    *float64  `toml:"text_size"`
	TextOffset  []float64 `toml:"text_offset"`

	Source        string `toml:"source"`
	NATSURL       string `toml:"nats_url"`
	PathSubject   string `toml:"path_subject"`
	MarkerSubject string `toml:"marker_subject"`
	InboxDir      string `toml:"inbox_dir"`
	HTTPURL       string `toml:"http_url"`
	HTTPTimeout   string `toml:"http_timeout"`
	SnapshotFile  string `toml:"snapshot_file"`
	PlotFile      string `toml:"plot_file"`
	MetricsAddr   string `toml:"metrics_addr"`
	LogLevel      string `toml:"log_level"`
	Once          *bool  `toml:"once"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.curvemark/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".curvemark", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setFloat("threshold", fc.Threshold, &cfg.Threshold)
	s.setBool("show-labels", fc.ShowLabels, &cfg.ShowLabels)
	s.setBool("show-radius", fc.ShowRadius, &cfg.ShowRadius)
	s.setString("frame-id", fc.FrameID, &cfg.FrameID)
	s.setFloats("sphere-color", fc.SphereColor, &cfg.SphereColor)
	s.setFloats("text-color", fc.TextColor, &cfg.TextColor)
	s.setFloat("sphere-size", fc.SphereSize, &cfg.SphereSize)
	s.setFloat("text-size", fc.TextSize, &cfg.TextSize)
	s.setFloats("text-offset", fc.TextOffset, &cfg.TextOffset)

	s.setString("source", fc.Source, &cfg.Source)
	s.setString("nats-url", fc.NATSURL, &cfg.NATSURL)
	s.setString("path-subject", fc.PathSubject, &cfg.PathSubject)
	s.setString("marker-subject", fc.MarkerSubject, &cfg.MarkerSubject)
	s.setString("inbox-dir", fc.InboxDir, &cfg.InboxDir)
	s.setString("http-url", fc.HTTPURL, &cfg.HTTPURL)
	s.setString("snapshot-file", fc.SnapshotFile, &cfg.SnapshotFile)
	s.setString("plot-file", fc.PlotFile, &cfg.PlotFile)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("http-timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
