// Package main is the entry point for the dynamic track viewer.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/dyntrack/internal/config"
	"github.com/Faultbox/dyntrack/internal/logger"
	"github.com/Faultbox/dyntrack/internal/track/loader"
	"github.com/Faultbox/dyntrack/internal/track/mesh"
	"github.com/Faultbox/dyntrack/internal/track/profile"
	"github.com/Faultbox/dyntrack/internal/track/section"
	"github.com/Faultbox/dyntrack/internal/viewer"
	"github.com/Faultbox/dyntrack/internal/world"
	"github.com/Faultbox/dyntrack/pkg/formats"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.Log
	log.Info("=== dyntrack viewer ===")
	log.Debug("config", zap.Any("config", cfg))

	meshes, err := buildTrack(cfg)
	if err != nil {
		// Partial builds are still worth showing.
		log.Error("some track segments failed to build", zap.Error(err))
	}
	if len(meshes) == 0 {
		log.Error("nothing to show")
		os.Exit(1)
	}

	v, err := viewer.New(cfg, meshes, logger.Named("viewer"))
	if err != nil {
		log.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		log.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("viewer closed normally")
}

func buildTrack(cfg *config.Config) ([]*mesh.BuiltMesh, error) {
	log := logger.Named("loader")
	fallback := loader.LoadProfile(cfg.Track.ProfilePath, log)

	var objs []loader.Object
	if cfg.Track.LayoutPath == "" {
		log.Info("no layout configured, showing demo loop")
		objs = []loader.Object{demoLoop(fallback)}
	} else {
		doc, err := formats.LoadLayout(cfg.Track.LayoutPath)
		if err != nil {
			return nil, err
		}
		profiles := loader.LoadProfiles(doc, filepath.Dir(cfg.Track.LayoutPath), fallback, log)
		objs, err = loader.ObjectsFromLayout(doc, profiles)
		if err != nil {
			return nil, err
		}
	}

	built, err := loader.Build(objs, cfg.Track.Workers(), log)
	return loader.Meshes(built), err
}

// demoLoop is a closed oval: two straights joined by half circles.
func demoLoop(p *profile.Profile) loader.Object {
	const (
		straight = 400.0
		radius   = 250.0
	)
	half := section.PathSegment{Curved: true, Angle: math.Pi, Radius: radius}
	segs := []section.PathSegment{
		{Length: straight, ElevationDelta: 4},
		half,
		{Length: straight, ElevationDelta: -4},
		half,
	}
	for i := range segs {
		segs[i].Index = i
	}
	return loader.Object{
		ID:       0,
		Root:     world.Identity(world.Location{}),
		Segments: segs,
		Profile:  p,
	}
}
