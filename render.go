package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Render a built-in scene and save it as a PNG.
func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument; run the scenes command for a list")
	}
	sceneName := ctx.Args().First()

	s, err := scene.Build(sceneName, scene.Options{
		Width:        ctx.Int("width"),
		Height:       ctx.Int("height"),
		Seed:         ctx.Int64("seed"),
		ModelPath:    ctx.String("model"),
		Orthographic: ctx.Bool("orthographic"),
	})
	if err != nil {
		return err
	}
	if err := s.Preprocess(); err != nil {
		return err
	}

	config := renderConfig(ctx, s)
	rt, err := renderer.NewRaytracer(s, config)
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done := make(chan struct{})
	go reportProgress(rt, done)
	img, stats, err := rt.Render(renderCtx)
	close(done)
	if err != nil {
		return err
	}

	outPath := ctx.String("out")
	if outPath == "" {
		outPath = filepath.Join(createOutputDir(sceneName), fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}
	if err := savePNG(outPath, img); err != nil {
		return err
	}

	logger.Noticef("render statistics\n%s", stats.Table())
	logger.Noticef("render saved as %s", outPath)
	return nil
}

// renderConfig merges the command line over the scene's recommended settings
func renderConfig(ctx *cli.Context, s *scene.Scene) renderer.Config {
	config := renderer.DefaultConfig()
	config.Width = s.SamplingConfig.Width
	config.Height = s.SamplingConfig.Height
	config.SamplesLevel = s.SamplingConfig.SamplesLevel
	config.MaxDepth = s.SamplingConfig.MaxDepth
	config.Mode = integrator.Mode(ctx.String("mode"))
	config.NumWorkers = ctx.Int("workers")
	config.TileSize = ctx.Int("tile-size")
	config.Seed = ctx.Int64("seed")
	config.Gamma = ctx.Float64("gamma")

	if n := ctx.Int("samples-level"); n > 0 {
		config.SamplesLevel = n
	}
	if depth := ctx.Int("max-depth"); depth > 0 {
		config.MaxDepth = depth
	}
	return config
}

// reportProgress logs the render progress every few seconds until done is
// closed
func reportProgress(rt *renderer.Raytracer, done <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			logger.Noticef("%.1f%% done", 100*rt.Progress())
		}
	}
}

// createOutputDir creates and returns output/<scene>
func createOutputDir(sceneName string) string {
	outputDir := filepath.Join("output", filepath.Base(sceneName))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Warningf("could not create %s: %v", outputDir, err)
	}
	return outputDir
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return errors.Wrapf(file.Close(), "closing %s", path)
}

// List the registered scenes.
func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Scene", "Title", "Size", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{
			info.Name,
			info.DisplayName,
			fmt.Sprintf("%dx%d", info.Width, info.Height),
			info.Description,
		})
	}
	table.Render()

	_, err := ctx.App.Writer.Write(buf.Bytes())
	return err
}
