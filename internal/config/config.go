// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Planet   PlanetConfig   `yaml:"planet"`
	Capture  CaptureConfig  `yaml:"capture"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// CameraConfig tunes the pan-orbit controller. Sensitivities apply to raw
// pointer motion; the orbit value is in degrees per pixel and converted to
// radians at camera creation.
type CameraConfig struct {
	PanSensitivity         float32 `yaml:"pan_sensitivity"`
	OrbitSensitivityDeg    float32 `yaml:"orbit_sensitivity_deg"`
	ZoomSensitivity        float32 `yaml:"zoom_sensitivity"`
	ScrollLineSensitivity  float32 `yaml:"scroll_line_sensitivity"`
	ScrollPixelSensitivity float32 `yaml:"scroll_pixel_sensitivity"`
	MinRadius              float32 `yaml:"min_radius"`
	MaxRadius              float32 `yaml:"max_radius"`
}

// PlanetConfig holds the startup generation parameters.
type PlanetConfig struct {
	Resolution int        `yaml:"resolution"`
	Spherify   bool       `yaml:"spherify"`
	Wireframe  bool       `yaml:"wireframe"`
	Color      [4]float32 `yaml:"color"` // RGBA, 0..1
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir string `yaml:"dir"`
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
			Width:  1280,
			Height: 800,
			VSync:  true,
		},
		Camera: CameraConfig{
			PanSensitivity:         0.001,
			OrbitSensitivityDeg:    0.1,
			ZoomSensitivity:        0.01,
			ScrollLineSensitivity:  16,
			ScrollPixelSensitivity: 1,
			MinRadius:              0.1,
			MaxRadius:              1000,
		},
		Planet: PlanetConfig{
			Resolution: 10,
			Spherify:   true,
			Wireframe:  false,
			Color:      [4]float32{0.5, 0.5, 0.6, 1.0},
		},
		Capture: CaptureConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
