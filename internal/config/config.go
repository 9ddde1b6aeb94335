// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Track    TrackConfig    `yaml:"track"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOVDegrees float64 `yaml:"fov_degrees"`
	// Sun position in degrees: azimuth 0 is +Z, 90 is +X.
	SunAzimuth   float64 `yaml:"sun_azimuth"`
	SunElevation float64 `yaml:"sun_elevation"`
}

// TrackConfig holds track data and mesh generation settings.
type TrackConfig struct {
	// ProfilePath is the profile used by objects that name none. Empty
	// selects the built-in profile.
	ProfilePath  string `yaml:"profile_path"`
	LayoutPath   string `yaml:"layout_path"`
	BuildWorkers int    `yaml:"build_workers"` // 0 means one per CPU
	// LODBias widens (positive) or narrows (negative) every cutoff
	// radius, in percent.
	LODBias         float64 `yaml:"lod_bias"`
	ViewingDistance float64 `yaml:"viewing_distance"`
	TextureDir      string  `yaml:"texture_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOVDegrees: 55,

			SunAzimuth:   225,
			SunElevation: 50,
		},
		Track: TrackConfig{
			BuildWorkers:    0,
			LODBias:         0,
			ViewingDistance: 2000,
			TextureDir:      "textures",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Workers returns the build pool size.
func (t TrackConfig) Workers() int {
	if t.BuildWorkers > 0 {
		return t.BuildWorkers
	}
	return runtime.NumCPU()
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("window size %dx%d: %w", c.Graphics.Width, c.Graphics.Height, ErrInvalidConfig)
	case c.Graphics.FOVDegrees <= 0 || c.Graphics.FOVDegrees >= 180:
		return fmt.Errorf("fov %v degrees: %w", c.Graphics.FOVDegrees, ErrInvalidConfig)
	case c.Graphics.SunElevation < -90 || c.Graphics.SunElevation > 90:
		return fmt.Errorf("sun elevation %v degrees: %w", c.Graphics.SunElevation, ErrInvalidConfig)
	case c.Track.BuildWorkers < 0:
		return fmt.Errorf("build workers %d: %w", c.Track.BuildWorkers, ErrInvalidConfig)
	case c.Track.LODBias <= -100:
		return fmt.Errorf("lod bias %v: %w", c.Track.LODBias, ErrInvalidConfig)
	case c.Track.ViewingDistance <= 0:
		return fmt.Errorf("viewing distance %v: %w", c.Track.ViewingDistance, ErrInvalidConfig)
	}
	return nil
}
