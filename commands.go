package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("pathtracer")

// renderConfig is everything a render command needs
type renderConfig struct {
	SceneName    string
	SceneOptions scene.Options
	Tree         bool
	Fog          *float64 // Overrides the scene's fog coefficient when set
	Sky          bool
	Integrator   integrator.Config
	Render       renderer.Options
	Out          string
	PreviewOut   string
	HDR          string
}

func setupLogging(ctx *cli.Context) error {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	for _, setting := range ctx.GlobalStringSlice("log-level") {
		module, name := parseModuleLevel(setting)
		level, err := log.ParseLevel(name)
		if err != nil {
			return errors.Wrapf(err, "bad --log-level %q", setting)
		}
		log.SetModuleLevel(level, module)
	}
	logger.Debugf("log level %s", log.GetLevel("pathtracer"))
	return nil
}

// parseModuleLevel splits module=level; a bare level applies to all modules
func parseModuleLevel(setting string) (module, level string) {
	if i := strings.LastIndex(setting, "="); i >= 0 {
		return setting[:i], setting[i+1:]
	}
	return "", setting
}

// renderConfigFromContext maps the render command's flags onto a renderConfig
func renderConfigFromContext(ctx *cli.Context) renderConfig {
	cfg := renderConfig{
		SceneName: ctx.String("scene"),
		SceneOptions: scene.Options{
			MeshFile:    ctx.String("mesh"),
			TextureFile: ctx.String("texture"),
			Seed:        ctx.Int64("seed"),
		},
		Tree:       ctx.Bool("tree"),
		Sky:        ctx.Bool("sky"),
		Integrator: integrator.DefaultConfig(),
		Render: renderer.Options{
			Width:           ctx.Int("width"),
			Height:          ctx.Int("height"),
			SamplesPerPixel: ctx.Int("spp"),
			PreviewSamples:  ctx.Int("preview"),
			Workers:         ctx.Int("workers"),
			Seed:            ctx.Int64("seed"),
		},
		Out:        ctx.String("out"),
		PreviewOut: ctx.String("preview-out"),
		HDR:        ctx.String("hdr"),
	}
	cfg.Integrator.MaxDepth = ctx.Int("depth")
	if ctx.IsSet("fog") {
		fog := ctx.Float64("fog")
		cfg.Fog = &fog
	}
	return cfg
}

// Render a scene.
func renderScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	if err := runRender(renderConfigFromContext(ctx)); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

// runRender builds the configured scene, renders it and writes the frames
func runRender(cfg renderConfig) error {
	s, err := scene.Build(cfg.SceneName, cfg.SceneOptions)
	if err != nil {
		return err
	}

	root, err := s.Root(cfg.Tree)
	if err != nil {
		return errors.Wrap(err, "failed to build acceleration structure")
	}

	integratorConfig := cfg.Integrator
	integratorConfig.Sky = cfg.Sky || s.Sky
	integratorConfig.FogCoefficient = s.Fog
	if cfg.Fog != nil {
		integratorConfig.FogCoefficient = *cfg.Fog
	}
	integ := integrator.NewPathTracingIntegrator(root, s.Lights, integratorConfig)

	options := resolveResolution(cfg.Render, s)
	r, err := renderer.NewRenderer(s.NewCamera(options.Width, options.Height), integ, options)
	if err != nil {
		return err
	}
	logger.Noticef("rendering %s at %dx%d (%s)", s.Name, options.Width, options.Height, s.Lights)

	err = r.Render(func(name string, frame *renderer.Frame) error {
		filename := cfg.Out
		if name == "preview" {
			filename = cfg.PreviewOut
		}
		if err := writeFrame(filename, frame); err != nil {
			return err
		}
		logger.Noticef("wrote %s frame to %s", name, filename)

		if name == "final" && cfg.HDR != "" {
			if err := output.WriteRadiance(cfg.HDR, frame.Radiance, frame.Width, frame.Height); err != nil {
				return err
			}
			logger.Noticef("wrote radiance to %s", cfg.HDR)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Noticef("render statistics\n%s", r.Stats().Table())
	return nil
}

// resolveResolution fills in an unset width from the scene and an unset
// height from the scene's aspect ratio
func resolveResolution(options renderer.Options, s *scene.Scene) renderer.Options {
	if options.Width <= 0 {
		options.Width, options.Height = s.Width, s.Height
	}
	if options.Height <= 0 {
		options.Height = int(math.Round(float64(options.Width) / s.Camera.AspectRatio))
	}
	return options
}

func writeFrame(filename string, frame *renderer.Frame) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "failed to create output directory")
		}
	}
	return output.WritePNG(filename, frame.Pixels, frame.Width, frame.Height)
}

// List the scenes of the catalog.
func listScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	logger.Noticef("available scenes\n%s", sceneTable())
	return nil
}

func sceneTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{info.ID, info.DisplayName, info.Description})
	}
	table.Render()
	return buf.String()
}
