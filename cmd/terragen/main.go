// Package main is the entry point for the terragen planet generator.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/config"
	"github.com/jostly/terragen/internal/logger"
	"github.com/jostly/terragen/internal/mesh"
	"github.com/jostly/terragen/internal/pipeline"
)

var flagSaveConfig = flag.String("save-config", "", "Write the effective config to this path and exit")

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *flagSaveConfig != "" {
		if err := cfg.SaveTo(*flagSaveConfig); err != nil {
			logger.Error("saving config failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", *flagSaveConfig))
		return
	}

	logger.Info("=== Terragen ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	rng, seed := pipeline.NewRNG(cfg.Generation.Seed)
	logger.Info("seeded", zap.Uint64("seed", seed))

	build := pipeline.Run(pipeline.OptionsFromConfig(cfg), rng)

	var m *mesh.Mesh
	if cfg.Output.Dual {
		m = mesh.FromPlanet(build.Planet, cfg.Output.Wireframe)
	} else {
		m = mesh.FromGenerator(build.Generator, cfg.Output.Wireframe)
	}

	if err := m.SaveOBJ(cfg.Output.Path); err != nil {
		return fmt.Errorf("exporting %s: %w", cfg.Output.Path, err)
	}
	logger.Info("mesh written",
		zap.String("path", cfg.Output.Path),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.NumTriangles()))

	if cfg.Output.RampPath != "" {
		if err := mesh.WriteRampPNG(cfg.Output.RampPath, cfg.Output.RampWidth); err != nil {
			return fmt.Errorf("writing ramp %s: %w", cfg.Output.RampPath, err)
		}
	}

	printStats(seed, build)
	return nil
}

func printStats(seed uint64, b *pipeline.Build) {
	g, p := b.Generator, b.Planet
	stats := p.PlateStats()
	lo, span := p.ElevationScale()

	fmt.Printf("seed:       %d\n", seed)
	fmt.Printf("level:      %d\n", g.CurrentLevel())
	fmt.Printf("mesh:       %d nodes, %d edges, %d faces\n", g.NumNodes(), g.NumEdges(), g.NumFaces())
	fmt.Printf("relaxation: %d iterations\n", b.RelaxIterations)
	fmt.Printf("tiles:      %d (%d borders)\n", p.NumTiles(), len(p.Borders))
	fmt.Printf("plates:     %d, size %d..%d, mean %.1f, variance %.1f\n",
		stats.Count, stats.MinSize, stats.MaxSize, stats.MeanSize, stats.SizeVariance)
	fmt.Printf("elevation:  %.1f..%.1f\n", lo, lo+span)
	fmt.Printf("elapsed:    %v\n", b.Elapsed)
}
