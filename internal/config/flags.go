package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSeed      = flag.Int64("seed", -1, "Random seed (0 picks one)")
	flagLevel     = flag.Int("level", -1, "Subdivision level")
	flagOut       = flag.String("out", "", "Output OBJ path")
	flagDual      = flag.Bool("dual", false, "Emit the tile mesh")
	flagRegular   = flag.Bool("regular", false, "Emit the triangle mesh")
	flagWireframe = flag.Bool("wireframe", false, "Include wireframe lines")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed >= 0 {
		cfg.Generation.Seed = uint64(*flagSeed)
	}
	if *flagLevel >= 0 {
		cfg.Generation.Level = *flagLevel
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagDual {
		cfg.Output.Dual = true
	}
	if *flagRegular {
		cfg.Output.Dual = false
	}
	if *flagWireframe {
		cfg.Output.Wireframe = true
	}
}
