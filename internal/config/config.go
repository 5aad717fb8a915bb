// Package config handles generator configuration loading and management.
package config

import "time"

// Config holds all generator settings.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Plates     PlatesConfig     `yaml:"plates"`
	Output     OutputConfig     `yaml:"output"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig controls mesh construction.
type GenerationConfig struct {
	Seed                 uint64  `yaml:"seed"` // 0 picks a random seed
	Level                int     `yaml:"level"`
	DistortionRate       float64 `yaml:"distortion_rate"` // edge flips as a fraction of the edge count
	DistortionIterations int     `yaml:"distortion_iterations"`
	RelaxMultiplier      float32 `yaml:"relax_multiplier"`
	MaxRelaxIterations   int     `yaml:"max_relax_iterations"`
	RelaxTolerance       float64 `yaml:"relax_tolerance"` // relative change in shift that ends relaxation
}

// PlatesConfig controls tectonic plate generation.
type PlatesConfig struct {
	Merge bool `yaml:"merge"`
}

// OutputConfig controls export.
type OutputConfig struct {
	Path      string `yaml:"path"`
	RampPath  string `yaml:"ramp_path"`
	RampWidth int    `yaml:"ramp_width"`
	Dual      bool   `yaml:"dual"`
	Wireframe bool   `yaml:"wireframe"`
}

// ServerConfig holds websocket server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxLevel     int           `yaml:"max_level"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			Seed:                 0,
			Level:                5,
			DistortionRate:       0.1,
			DistortionIterations: 6,
			RelaxMultiplier:      0.5,
			MaxRelaxIterations:   300,
			RelaxTolerance:       0.01,
		},
		Plates: PlatesConfig{
			Merge: true,
		},
		Output: OutputConfig{
			Path:      "planet.obj",
			RampPath:  "height_ramp.png",
			RampWidth: 256,
			Dual:      true,
			Wireframe: false,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			WriteTimeout: 10 * time.Second,
			MaxLevel:     6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
