package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.FOVDegrees != 55 {
		t.Errorf("expected fov 55, got %v", cfg.Graphics.FOVDegrees)
	}
	if cfg.Graphics.SunAzimuth != 225 || cfg.Graphics.SunElevation != 50 {
		t.Errorf("expected sun at 225/50, got %v/%v", cfg.Graphics.SunAzimuth, cfg.Graphics.SunElevation)
	}

	if cfg.Track.ProfilePath != "" {
		t.Errorf("expected built-in profile by default, got %s", cfg.Track.ProfilePath)
	}
	if cfg.Track.ViewingDistance != 2000 {
		t.Errorf("expected viewing distance 2000, got %v", cfg.Track.ViewingDistance)
	}
	if cfg.Track.Workers() != runtime.NumCPU() {
		t.Errorf("expected one worker per CPU, got %d", cfg.Track.Workers())
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fov_degrees: 70
  sun_azimuth: 90
  sun_elevation: 15

track:
  profile_path: profiles/main.xml
  layout_path: /data/layout.yaml
  build_workers: 3
  lod_bias: 25
  viewing_distance: 3500

logging:
  level: "debug"
  log_file: "track.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen || cfg.Graphics.VSync {
		t.Error("expected fullscreen on and vsync off")
	}
	if cfg.Graphics.FOVDegrees != 70 {
		t.Errorf("expected fov 70, got %v", cfg.Graphics.FOVDegrees)
	}
	if cfg.Graphics.SunAzimuth != 90 || cfg.Graphics.SunElevation != 15 {
		t.Errorf("expected sun at 90/15, got %v/%v", cfg.Graphics.SunAzimuth, cfg.Graphics.SunElevation)
	}

	if want := filepath.Join(tmpDir, "profiles", "main.xml"); cfg.Track.ProfilePath != want {
		t.Errorf("expected relative profile path resolved to %s, got %s", want, cfg.Track.ProfilePath)
	}
	if cfg.Track.LayoutPath != "/data/layout.yaml" {
		t.Errorf("absolute layout path should be kept, got %s", cfg.Track.LayoutPath)
	}
	if cfg.Track.Workers() != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Track.Workers())
	}
	if cfg.Track.LODBias != 25 || cfg.Track.ViewingDistance != 3500 {
		t.Errorf("expected bias 25 and distance 3500, got %v %v", cfg.Track.LODBias, cfg.Track.ViewingDistance)
	}
	if cfg.Track.TextureDir != "textures" {
		t.Errorf("unset texture dir should keep its default, got %s", cfg.Track.TextureDir)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "track.log" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }},
		{"zero fov", func(c *Config) { c.Graphics.FOVDegrees = 0 }},
		{"straight fov", func(c *Config) { c.Graphics.FOVDegrees = 180 }},
		{"sun below nadir", func(c *Config) { c.Graphics.SunElevation = -91 }},
		{"sun past zenith", func(c *Config) { c.Graphics.SunElevation = 120 }},
		{"negative workers", func(c *Config) { c.Track.BuildWorkers = -2 }},
		{"bias removes every level", func(c *Config) { c.Track.LODBias = -100 }},
		{"zero viewing distance", func(c *Config) { c.Track.ViewingDistance = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "dyntrack.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find dyntrack.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "track flags",
			setup: func() {
				*flagProfile = "main.xml"
				*flagLayout = "yard.yaml"
				*flagWorkers = 2
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Track.ProfilePath != "main.xml" || cfg.Track.LayoutPath != "yard.yaml" {
					t.Errorf("unexpected paths: %+v", cfg.Track)
				}
				if cfg.Track.Workers() != 2 {
					t.Errorf("expected 2 workers, got %d", cfg.Track.Workers())
				}
			},
			teardown: func() {
				*flagProfile = ""
				*flagLayout = ""
				*flagWorkers = 0
			},
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("track:\n  viewing_distance: -5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Track.LODBias = -20
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Track.LODBias != -20 {
		t.Errorf("expected lod bias -20, got %v", loaded.Track.LODBias)
	}
}
