// Command panelobj writes the bent panorama panels as a Wavefront OBJ file
// without opening a window or reading any texture.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/leterax/go-panorama/internal/config"
	"github.com/leterax/go-panorama/internal/logger"
	"github.com/leterax/go-panorama/pkg/panel"
	"github.com/leterax/go-panorama/pkg/scene"
)

// textureID stands in for a texture that is never loaded.
type textureID string

func (t textureID) ID() string { return string(t) }

type namesOnly struct{}

func (namesOnly) LoadTexture(id string) (panel.TextureHandle, error) { return textureID(id), nil }
func (namesOnly) Placeholder() panel.TextureHandle                   { return textureID("") }

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (empty for defaults)")
	out := flag.String("out", "", "Output file (empty for stdout)")
	radius := flag.Float64("radius", 0, "Cylinder radius (overrides config)")
	count := flag.Int("n", 0, "Number of panels (overrides the texture list)")
	flag.Parse()

	if err := run(*configPath, *out, *radius, *count); err != nil {
		slog.Error("Export failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, out string, radius float64, count int) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	// Logs go to stderr so stdout stays a clean OBJ stream.
	closer, err := logger.Init(cfg.LoggerConfig())
	if err != nil {
		return err
	}
	defer closer.Close()

	if radius > 0 {
		cfg.Panorama.Radius = radius
	}
	if count > 0 {
		cfg.Panorama.Textures = make([]string, count)
		for i := range cfg.Panorama.Textures {
			cfg.Panorama.Textures[i] = fmt.Sprintf("panel%d", i+1)
		}
	}
	pc := cfg.PanelConfig()
	pc.DebugBounds = false

	layout, err := panel.Build(pc, namesOnly{}, scene.New())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := panel.WriteOBJ(w, layout); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}

	slog.Info("Wrote panorama", "panels", len(layout.Panels), "out", orStdout(out), "textures", strings.Join(pc.Textures, ","))
	return nil
}

func orStdout(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
