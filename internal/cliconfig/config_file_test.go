package cliconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false
	zero := 0.0
	half := 0.5

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Threshold:   &half,
				ShowRadius:  &falseVal,
				FrameID:     "odom",
				HTTPTimeout: "5s",
				Once:        &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{ShowRadius: true},
			expected: Config{
				Threshold:   0.5,
				ShowRadius:  false,
				FrameID:     "odom",
				HTTPTimeout: 5 * time.Second,
				Once:        true,
			},
			wantErr: false,
		},
		{
			name: "zero threshold is applied",
			fileConfig: FileConfig{
				Threshold: &zero,
			},
			changed:  map[string]bool{},
			initial:  Config{Threshold: 0.2},
			expected: Config{Threshold: 0},
			wantErr:  false,
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				FrameID:     "file-frame",
				PathSubject: "file.path",
				SphereColor: []float64{0, 0, 1, 1},
			},
			changed: map[string]bool{"frame-id": true, "sphere-color": true},
			initial: Config{
				FrameID:     "flag-frame",
				PathSubject: "sPath",
				SphereColor: []float64{1, 0, 0, 1},
			},
			expected: Config{
				FrameID:     "flag-frame", // unchanged because flag was set
				PathSubject: "file.path",
				SphereColor: []float64{1, 0, 0, 1},
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid duration",
			fileConfig: FileConfig{
				HTTPTimeout: "soon",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name: "handles all field types correctly",
			fileConfig: FileConfig{
				Threshold:     &half,
				ShowLabels:    &falseVal,
				ShowRadius:    &trueVal,
				FrameID:       "base_link",
				SphereColor:   []float64{0.1, 0.2, 0.3, 0.4},
				TextColor:     []float64{0, 0, 0, 1},
				SphereSize:    &half,
				TextSize:      &half,
				TextOffset:    []float64{2, 0, 1},
				Source:        "dir",
				NATSURL:       "nats://bus:4222",
				PathSubject:   "plan.path",
				MarkerSubject: "plan.kappa",
				InboxDir:      "/var/inbox",
				HTTPURL:       "http://viewer",
				HTTPTimeout:   "30s",
				SnapshotFile:  "/var/markers.json",
				PlotFile:      "/var/markers.png",
				MetricsAddr:   ":9100",
				LogLevel:      "debug",
				Once:          &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{ShowLabels: true},
			expected: Config{
				Threshold:     0.5,
				ShowLabels:    false,
				ShowRadius:    true,
				FrameID:       "base_link",
				SphereColor:   []float64{0.1, 0.2, 0.3, 0.4},
				TextColor:     []float64{0, 0, 0, 1},
				SphereSize:    0.5,
				TextSize:      0.5,
				TextOffset:    []float64{2, 0, 1},
				Source:        "dir",
				NATSURL:       "nats://bus:4222",
				PathSubject:   "plan.path",
				MarkerSubject: "plan.kappa",
				InboxDir:      "/var/inbox",
				HTTPURL:       "http://viewer",
				HTTPTimeout:   30 * time.Second,
				SnapshotFile:  "/var/markers.json",
				PlotFile:      "/var/markers.png",
				MetricsAddr:   ":9100",
				LogLevel:      "debug",
				Once:          true,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyFileConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyFileConfig() unexpected error: %v", err)
				return
			}

			if !tt.wantErr && !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("ApplyFileConfig() =\n%+v\nwant\n%+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	// Create a temporary TOML file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
threshold = 0.35
show_radius = false
frame_id = "odom"
sphere_color = [1.0, 0.0, 0.0, 0.8]
text_offset = [1.5, 0.0, 0.5]
source = "dir"
inbox_dir = "/var/lib/curvemark/inbox"
http_timeout = "3s"
once = true
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.Threshold == nil || *fc.Threshold != 0.35 {
		t.Errorf("Threshold = %v, want 0.35", fc.Threshold)
	}
	if fc.ShowRadius == nil || *fc.ShowRadius {
		t.Errorf("ShowRadius = %v, want false", fc.ShowRadius)
	}
	if fc.ShowLabels != nil {
		t.Errorf("ShowLabels = %v, want unset", *fc.ShowLabels)
	}
	if fc.FrameID != "odom" {
		t.Errorf("FrameID = %v, want odom", fc.FrameID)
	}
	if !reflect.DeepEqual(fc.SphereColor, []float64{1, 0, 0, 0.8}) {
		t.Errorf("SphereColor = %v", fc.SphereColor)
	}
	if !reflect.DeepEqual(fc.TextOffset, []float64{1.5, 0, 0.5}) {
		t.Errorf("TextOffset = %v", fc.TextOffset)
	}
	if fc.Source != "dir" || fc.InboxDir != "/var/lib/curvemark/inbox" {
		t.Errorf("Source/InboxDir = %v/%v", fc.Source, fc.InboxDir)
	}
	if fc.HTTPTimeout != "3s" {
		t.Errorf("HTTPTimeout = %v, want 3s", fc.HTTPTimeout)
	}
	if fc.Once == nil || !*fc.Once {
		t.Errorf("Once = %v, want true", fc.Once)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
threshold = 0.2
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	// Should return a path containing .curvemark
	if path != "" && !strings.Contains(path, ".curvemark") {
		t.Errorf("DefaultConfigPath() = %v, should contain .curvemark", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
