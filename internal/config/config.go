// Package config loads the viewer's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-panorama/internal/logger"
	"github.com/leterax/go-panorama/pkg/locomotion"
	"github.com/leterax/go-panorama/pkg/panel"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Panorama   PanoramaConfig   `yaml:"panorama"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Orbit      OrbitConfig      `yaml:"orbit"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type WindowConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Title            string  `yaml:"title"`
	VSync            bool    `yaml:"vsync"`
	FOV              float64 `yaml:"fov"`
	Near             float64 `yaml:"near"`
	Far              float64 `yaml:"far"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	// Background is an RGB hex colour such as "#88ccff".
	Background string `yaml:"background"`
}

type PanoramaConfig struct {
	Textures       []string `yaml:"textures"`
	TextureDir     string   `yaml:"texture_dir"`
	MaxTextureSize int      `yaml:"max_texture_size"`
	Radius         float64  `yaml:"radius"`
	AspectRatio    float64  `yaml:"aspect_ratio"`
	WidthSegments  int      `yaml:"width_segments"`
	HeightSegments int      `yaml:"height_segments"`
	DebugBounds    bool     `yaml:"debug_bounds"`
	Floor          bool     `yaml:"floor"`
}

type LocomotionConfig struct {
	Damping             float64 `yaml:"damping"`
	Gravity             float64 `yaml:"gravity"`
	MoveAccel           float64 `yaml:"move_accel"`
	JumpImpulse         float64 `yaml:"jump_impulse"`
	MinEyeHeight        float64 `yaml:"min_eye_height"`
	GroundProbeDistance float64 `yaml:"ground_probe_distance"`
}

type OrbitConfig struct {
	Radius float64    `yaml:"radius"`
	Height float64    `yaml:"height"`
	Period float64    `yaml:"period"` // seconds per radian
	Target [3]float64 `yaml:"target"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a complete configuration.
func Default() *Config {
	loco := locomotion.DefaultConfig()
	return &Config{
		Window: WindowConfig{
			Width:            1280,
			Height:           720,
			Title:            "Panorama",
			VSync:            true,
			FOV:              50,
			Near:             0.1,
			Far:              1000,
			MouseSensitivity: 0.1,
			Background:       "#88ccff",
		},
		Panorama: PanoramaConfig{
			Textures:       []string{"rec1.png", "rec2.png", "rec3.png", "rec4.png"},
			TextureDir:     "img",
			MaxTextureSize: 4096,
			Radius:         1,
			AspectRatio:    panel.DefaultAspectRatio,
			WidthSegments:  panel.DefaultWidthSegments,
			HeightSegments: panel.DefaultHeightSegments,
			DebugBounds:    true,
			Floor:          true,
		},
		Locomotion: LocomotionConfig{
			Damping:             loco.DampingCoefficient,
			Gravity:             loco.GravityAccel,
			MoveAccel:           loco.MoveAccel,
			JumpImpulse:         loco.JumpImpulse,
			MinEyeHeight:        loco.MinEyeHeight,
			GroundProbeDistance: loco.GroundProbeDistance,
		},
		Orbit: OrbitConfig{
			Radius: 3,
			Height: 0.3,
			Period: 10,
			Target: [3]float64{0, 0.4, 0},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values. A relative texture_dir is resolved against the file's
// directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Panorama.TextureDir != "" && !filepath.IsAbs(cfg.Panorama.TextureDir) {
		cfg.Panorama.TextureDir = filepath.Join(filepath.Dir(path), cfg.Panorama.TextureDir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

var (
	ErrWindowSize  = errors.New("window size must be positive")
	ErrProjection  = errors.New("projection needs 0 < fov < 180 and 0 < near < far")
	ErrOrbit       = errors.New("orbit radius and period must be positive")
	ErrLogLevel    = errors.New("unknown log level")
	ErrBackground  = errors.New("background must be a #rrggbb colour")
	ErrTextureSize = errors.New("max texture size must not be negative")
)

// Validate checks every section, including the panel and locomotion
// settings the builders would reject later.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, ErrWindowSize)
	}
	if c.Window.FOV <= 0 || c.Window.FOV >= 180 || c.Window.Near <= 0 || c.Window.Far <= c.Window.Near {
		errs = append(errs, ErrProjection)
	}
	if _, err := c.Window.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	if c.Panorama.MaxTextureSize < 0 {
		errs = append(errs, ErrTextureSize)
	}
	if err := c.PanelConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.LocomotionConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Orbit.Radius <= 0 || c.Orbit.Period <= 0 {
		errs = append(errs, ErrOrbit)
	}
	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrLogLevel, c.Logging.Level))
	}
	return errors.Join(errs...)
}

// PanelConfig converts the panorama section for panel.Build.
func (c *Config) PanelConfig() panel.Config {
	return panel.Config{
		Textures:       append([]string(nil), c.Panorama.Textures...),
		Radius:         c.Panorama.Radius,
		AspectRatio:    c.Panorama.AspectRatio,
		WidthSegments:  c.Panorama.WidthSegments,
		HeightSegments: c.Panorama.HeightSegments,
		DebugBounds:    c.Panorama.DebugBounds,
	}
}

// LocomotionConfig converts the locomotion section for the controller.
func (c *Config) LocomotionConfig() locomotion.Config {
	return locomotion.Config{
		DampingCoefficient:  c.Locomotion.Damping,
		GravityAccel:        c.Locomotion.Gravity,
		MoveAccel:           c.Locomotion.MoveAccel,
		JumpImpulse:         c.Locomotion.JumpImpulse,
		MinEyeHeight:        c.Locomotion.MinEyeHeight,
		GroundProbeDistance: c.Locomotion.GroundProbeDistance,
	}
}

// LoggerConfig converts the logging section.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		File:   c.Logging.File,
	}
}

// OrbitTarget returns the point the idle camera looks at.
func (o OrbitConfig) OrbitTarget() mgl64.Vec3 {
	return mgl64.Vec3(o.Target)
}

// BackgroundColor parses Background into RGB components in [0, 1].
func (w WindowConfig) BackgroundColor() (mgl64.Vec3, error) {
	var r, g, b uint8
	if len(w.Background) != 7 {
		return mgl64.Vec3{}, fmt.Errorf("%w: %q", ErrBackground, w.Background)
	}
	if _, err := fmt.Sscanf(w.Background, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return mgl64.Vec3{}, fmt.Errorf("%w: %q", ErrBackground, w.Background)
	}
	return mgl64.Vec3{float64(r) / 255, float64(g) / 255, float64(b) / 255}, nil
}
