// Package renderer turns a preprocessed scene into an image: it splits the
// frame into tiles, samples every pixel in parallel and tone maps the result.
package renderer

import (
	"context"
	"image"
	"image/color"
	"math"
	"sync/atomic"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/pkg/errors"
)

var logger = log.New("renderer")

// Raytracer handles the rendering process
type Raytracer struct {
	scene      *scene.Scene
	config     Config
	integrator integrator.Integrator
	tiles      []Tile

	tilesDone atomic.Int64 // Tiles finished in the current render
}

// NewRaytracer creates a raytracer for s. An empty config.Mode selects the
// scene's own mode. The scene is preprocessed if that has not happened yet,
// and its camera is re-aimed when the image aspect ratio differs from the
// one it was built for.
func NewRaytracer(s *scene.Scene, config Config) (*Raytracer, error) {
	if config.Mode == "" {
		config.Mode = s.Mode
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if s.Camera == nil {
		return nil, errors.Errorf("scene %q has no camera", s.Name)
	}
	if s.World == nil {
		if err := s.Preprocess(); err != nil {
			return nil, err
		}
	}

	aspect := float64(config.Width) / float64(config.Height)
	if cc := s.CameraConfig; cc.VFov > 0 && math.Abs(cc.AspectRatio-aspect) > 1e-9 {
		logger.Debugf("adjusting camera aspect ratio from %.3f to %.3f", cc.AspectRatio, aspect)
		s.Camera.MoveCamera(cc.Position, cc.LookAt, cc.Up, cc.VFov, aspect)
		s.CameraConfig.AspectRatio = aspect
	}

	return &Raytracer{
		scene:      s,
		config:     config,
		integrator: integrator.New(config.Mode, s.World, s.Lights, s.Sky, config.MaxDepth),
		tiles:      NewTileGrid(config.Width, config.Height, config.TileSize),
	}, nil
}

// Config returns the effective render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Progress returns the fraction of tiles finished by the current or last
// render. It is safe to call from any goroutine.
func (rt *Raytracer) Progress() float64 {
	return float64(rt.tilesDone.Load()) / float64(len(rt.tiles))
}

// Render samples every pixel and returns the tone mapped image. It returns
// the context error if ctx is cancelled before all tiles are done.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	rt.tilesDone.Store(0)

	pixelStats := make([][]PixelStats, rt.config.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, rt.config.Width)
	}

	tileRenderer := NewTileRenderer(rt.scene.Camera, rt.integrator, rt.config.Width, rt.config.Height, rt.config.SamplesLevel)
	pool := NewWorkerPool(tileRenderer, rt.config.Seed, rt.config.NumWorkers, len(rt.tiles))

	logger.Infof("rendering %q: %dx%d, %d samples/pixel, %s mode, %d tiles on %d workers",
		rt.scene.Name, rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel(),
		rt.config.Mode, len(rt.tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for _, tile := range rt.tiles {
		pool.SubmitTask(TileTask{Tile: tile, PixelStats: pixelStats})
	}

	stats := RenderStats{
		Width:           rt.config.Width,
		Height:          rt.config.Height,
		TotalPixels:     rt.config.Width * rt.config.Height,
		SamplesPerPixel: rt.config.SamplesPerPixel(),
		Tiles:           len(rt.tiles),
		TilesPerWorker:  make(map[int]int),
	}

	var renderErr error
	for range rt.tiles {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = errors.New("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.TotalSamples += result.Samples
		stats.TilesPerWorker[result.WorkerID]++
		done := rt.tilesDone.Add(1)
		logger.Debugf("tile %d done by worker %d (%d/%d)", result.TileID, result.WorkerID, done, len(rt.tiles))
	}
	pool.Stop()

	if renderErr != nil {
		return nil, stats, errors.Wrapf(renderErr, "rendering %q", rt.scene.Name)
	}

	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	for y := range pixelStats {
		for x := range pixelStats[y] {
			img.SetRGBA(x, y, rt.vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}

	stats.Elapsed = time.Since(start)
	logger.Infof("rendered %q in %v (%.0f samples/s)", rt.scene.Name, stats.Elapsed, stats.SamplesPerSecond())
	return img, stats, nil
}

// vec3ToColor converts a linear radiance average to RGBA with clamping and
// gamma correction
func (rt *Raytracer) vec3ToColor(colorVec core.Vec3) color.RGBA {
	return ToneMap(colorVec, rt.config.Gamma)
}

// ToneMap clamps linear radiance to [0, 1], applies the display gamma and
// quantizes to 8 bits. NaN channels map to black.
func ToneMap(colorVec core.Vec3, gamma float64) color.RGBA {
	colorVec = core.NewVec3(finite(colorVec.X), finite(colorVec.Y), finite(colorVec.Z))
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(gamma)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

func finite(c float64) float64 {
	if math.IsNaN(c) {
		return 0
	}
	return c
}
