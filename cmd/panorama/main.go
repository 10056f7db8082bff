package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/leterax/go-panorama/internal/config"
	"github.com/leterax/go-panorama/internal/logger"
	"github.com/leterax/go-panorama/pkg/panel"
	"github.com/leterax/go-panorama/pkg/render"
	"github.com/leterax/go-panorama/pkg/scene"
	"github.com/leterax/go-panorama/pkg/texture"
)

func init() {
	// OpenGL calls must all come from the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (empty for defaults)")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	textures := flag.String("textures", "", "Comma-separated texture files (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *width, *height, *textures)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	closer, err := logger.Init(cfg.LoggerConfig())
	if err != nil {
		slog.Error("Failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg); err != nil {
		slog.Error("Panorama exited", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

func loadConfig(path string, width, height int, textures string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if width > 0 {
		cfg.Window.Width = width
	}
	if height > 0 {
		cfg.Window.Height = height
	}
	if textures != "" {
		cfg.Panorama.Textures = splitList(textures)
	}
	return cfg, cfg.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func run(cfg *config.Config) error {
	dir := cfg.Panorama.TextureDir
	if dir == "" {
		dir = "."
	}
	loader := texture.NewLoader(texture.Options{
		FS:      os.DirFS(dir),
		MaxSize: cfg.Panorama.MaxTextureSize,
		FlipY:   true,
	})
	defer loader.Close()

	sc := scene.New()
	layout, err := panel.Build(cfg.PanelConfig(), loader, sc)
	if err != nil {
		return err
	}
	if err := layout.Err(); err != nil {
		slog.Warn("Some panels use the placeholder texture", "error", err)
	}

	background, err := cfg.Window.BackgroundColor()
	if err != nil {
		return err
	}

	opts := render.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
		Camera: render.CameraOptions{
			FOV:         cfg.Window.FOV,
			Near:        cfg.Window.Near,
			Far:         cfg.Window.Far,
			Sensitivity: cfg.Window.MouseSensitivity,
		},
		Orbit: render.Orbit{
			Radius: cfg.Orbit.Radius,
			Height: cfg.Orbit.Height,
			Period: cfg.Orbit.Period,
			Target: cfg.Orbit.OrbitTarget(),
		},
		Locomotion: cfg.LocomotionConfig(),
		Background: background,
	}
	if cfg.Panorama.Floor {
		opts.FloorRadius = layout.Radius
	}
	if h, ok := loader.Placeholder().(*texture.Handle); ok {
		opts.Placeholder = h.Image()
	}

	renderer, err := render.NewRenderer(opts, sc)
	if err != nil {
		return err
	}

	renderer.Run()
	return nil
}
