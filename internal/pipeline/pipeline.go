// Package pipeline runs the generation recipe: subdivision, a distortion and
// relaxation schedule, conversion to a tile planet and plate growth. It also
// hosts the worker that runs mesh jobs off the caller's goroutine.
package pipeline

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/config"
	"github.com/jostly/terragen/internal/logger"
	"github.com/jostly/terragen/internal/planet"
	"github.com/jostly/terragen/internal/terrain"
)

// Options controls a generation run.
type Options struct {
	Level                int
	DistortionRate       float64
	DistortionIterations int
	RelaxMultiplier      float32
	MaxRelaxIterations   int
	RelaxTolerance       float64
	Merge                bool
}

// OptionsFromConfig extracts generation options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	g := cfg.Generation
	return Options{
		Level:                g.Level,
		DistortionRate:       g.DistortionRate,
		DistortionIterations: g.DistortionIterations,
		RelaxMultiplier:      g.RelaxMultiplier,
		MaxRelaxIterations:   g.MaxRelaxIterations,
		RelaxTolerance:       g.RelaxTolerance,
		Merge:                cfg.Plates.Merge,
	}
}

// NewRNG returns a PCG generator for seed. Seed 0 draws a fresh seed, which is
// returned so the run can be reproduced.
func NewRNG(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d)), seed
}

// Build is the output of a full generation run.
type Build struct {
	Generator *terrain.Generator
	Planet    *planet.Planet
	// RelaxIterations counts the convergence iterations after distortion.
	RelaxIterations int
	Elapsed         time.Duration
}

// Run generates a planet from scratch.
func Run(opts Options, rng *rand.Rand) *Build {
	start := time.Now()
	log := logger.Named("pipeline")

	g := terrain.New(rng)
	for g.CurrentLevel() < uint8(opts.Level) {
		g.Subdivide()
	}

	Distort(g, opts)
	iterations, shift := RelaxUntilStable(g, opts.RelaxMultiplier, opts.RelaxTolerance, opts.MaxRelaxIterations)
	log.Debug("relaxed", zap.Int("iterations", iterations), zap.Float32("shift", shift))

	p := g.ToPlanet()
	p.GrowPlates()
	if opts.Merge {
		p.MergePlates()
	}

	b := &Build{Generator: g, Planet: p, RelaxIterations: iterations, Elapsed: time.Since(start)}
	log.Info("planet generated",
		zap.Int("level", opts.Level),
		zap.Int("tiles", p.NumTiles()),
		zap.Int("plates", len(p.Plates())),
		zap.Duration("elapsed", b.Elapsed))
	return b
}

// DistortionSchedule splits rate×numEdges flips into iterations batches of
// decreasing size, batch i weighted by iterations-i.
func DistortionSchedule(numEdges int, rate float64, iterations int) []uint32 {
	if iterations <= 0 {
		return nil
	}
	total := rate * float64(numEdges)
	weightSum := float64(iterations*(iterations+1)) / 2

	batches := make([]uint32, iterations)
	for i := range batches {
		weight := float64(iterations - i)
		batches[i] = uint32(math.Round(total * weight / weightSum))
	}
	return batches
}

// Distort applies the distortion schedule, relaxing once after every batch.
// Returns false if any batch saturated before reaching its flip count.
func Distort(g *terrain.Generator, opts Options) bool {
	complete := true
	for _, batch := range DistortionSchedule(len(g.Edges), opts.DistortionRate, opts.DistortionIterations) {
		if batch == 0 {
			continue
		}
		if !g.Distort(batch) {
			complete = false
		}
		g.Relax(opts.RelaxMultiplier)
	}
	return complete
}

// RelaxUntilStable relaxes until the total shift changes by less than
// tolerance relative to the previous step, or maxIterations is reached.
// Returns the iteration count and the last shift.
func RelaxUntilStable(g *terrain.Generator, multiplier float32, tolerance float64, maxIterations int) (int, float32) {
	var prev, shift float32
	for i := range maxIterations {
		shift = g.Relax(multiplier)
		if shift == 0 {
			return i + 1, shift
		}
		if i > 0 && math.Abs(float64(prev-shift))/float64(prev) < tolerance {
			return i + 1, shift
		}
		prev = shift
	}
	return maxIterations, shift
}
