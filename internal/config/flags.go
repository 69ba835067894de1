package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagResolution = flag.Int("resolution", 0, "Planet grid resolution (2-256)")
	flagFlat       = flag.Bool("flat", false, "Start with spherify disabled (raw cube)")
	flagWireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagLogFile    = flag.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagResolution > 0 {
		cfg.Planet.Resolution = *flagResolution
	}
	if *flagFlat {
		cfg.Planet.Spherify = false
	}
	if *flagWireframe {
		cfg.Planet.Wireframe = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
