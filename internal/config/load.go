package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./dyntrack.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "DynTrack")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "DynTrack")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "dyntrack")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "dyntrack")
	}
}

// loadFromFile merges a YAML file over the values already in cfg.
// Relative track paths are resolved against the file's directory.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	before := cfg.Track
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	resolve := func(p *string, old string) {
		if *p != "" && *p != old && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	resolve(&cfg.Track.ProfilePath, before.ProfilePath)
	resolve(&cfg.Track.LayoutPath, before.LayoutPath)
	resolve(&cfg.Track.TextureDir, before.TextureDir)
	return nil
}
