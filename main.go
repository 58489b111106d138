package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := renderer.DefaultOptions()
	integratorDefaults := integrator.DefaultConfig()

	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-pathtracer"
	app.Usage = "render scenes using Monte-Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringSliceFlag{
			Name:  "log-level",
			Usage: "set one module's verbosity as module=level, e.g. renderer=debug",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to PNG",
			Description: `
Build one of the scenes listed by list-scenes, render a quick preview pass
followed by the final pass, and write both frames as PNG images.

The final frame's linear radiance can additionally be saved in a compressed
float format with --hdr.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cornell",
					Usage: "scene to render",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width, 0 for the scene's default",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height, 0 to follow the scene's aspect ratio",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: defaults.SamplesPerPixel,
					Usage: "samples per pixel of the final pass",
				},
				cli.IntFlag{
					Name:  "preview",
					Value: defaults.PreviewSamples,
					Usage: "samples per pixel of the preview pass, 0 to skip it",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: integratorDefaults.MaxDepth,
					Usage: "maximum number of bounces per path",
				},
				cli.Float64Flag{
					Name:  "fog",
					Usage: "fog coefficient, negative values dim distant light (default: the scene's)",
				},
				cli.BoolFlag{
					Name:  "sky",
					Usage: "light escaping rays with the sky gradient",
				},
				cli.BoolFlag{
					Name:  "tree",
					Usage: "use best-first BVH traversal instead of ordered descent",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: defaults.Seed,
					Usage: "seed of the scene layout and the sampling streams",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "rendering goroutines, 0 for one per CPU",
				},
				cli.StringFlag{
					Name:  "mesh",
					Usage: "OBJ mesh shown by scenes that support one",
				},
				cli.StringFlag{
					Name:  "texture",
					Usage: "image wrapped around the earth spheres",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "out.png",
					Usage: "image filename for the final frame",
				},
				cli.StringFlag{
					Name:  "preview-out",
					Value: "pre.png",
					Usage: "image filename for the preview frame",
				},
				cli.StringFlag{
					Name:  "hdr",
					Usage: "filename for the final frame's compressed linear radiance",
				},
			},
			Action: renderScene,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the scenes that can be rendered",
			Action: listScenes,
		},
	}
	return app
}
