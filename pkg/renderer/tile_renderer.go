package renderer

import (
	"image"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
)

// TileRenderer renders individual tiles using an integrator. It holds no
// per-render state, so one instance serves every worker.
type TileRenderer struct {
	camera       geometry.Camera
	integrator   integrator.Integrator
	width        int
	height       int
	samplesLevel int
}

// NewTileRenderer creates a new tile renderer for a width x height image
// taking samplesLevel² samples per pixel
func NewTileRenderer(camera geometry.Camera, integratorInst integrator.Integrator, width, height, samplesLevel int) *TileRenderer {
	return &TileRenderer{
		camera:       camera,
		integrator:   integratorInst,
		width:        width,
		height:       height,
		samplesLevel: max(1, samplesLevel),
	}
}

// RenderTileBounds renders pixels within the specified bounds into
// pixelStats, drawing randomness from sampler. It returns the number of
// samples taken.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler) int {
	jitter := core.NewMultiJitter(tr.samplesLevel, sampler)
	samples := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samples += tr.samplePixel(x, y, jitter, &pixelStats[y][x], sampler)
		}
	}
	return samples
}

// samplePixel traces one camera ray through every cell of a freshly
// generated and shuffled multi-jittered pattern
func (tr *TileRenderer) samplePixel(x, y int, jitter *core.MultiJitter, ps *PixelStats, sampler core.Sampler) int {
	jitter.Generate(sampler)
	jitter.Shuffle(sampler)

	for _, offset := range jitter.Samples() {
		u, v := PixelUV(x, y, offset, tr.width, tr.height)
		ray := tr.camera.GetRay(u, v)
		ps.AddSample(tr.integrator.RayColor(ray, sampler))
	}
	return len(jitter.Samples())
}

// PixelUV maps a sample at offset inside pixel (x, y) to normalized image
// coordinates. Image rows grow downward while v grows upward, so row 0 maps to
// the top of the image.
func PixelUV(x, y int, offset core.Vec2, width, height int) (u, v float64) {
	u = (float64(x) + offset.X) / float64(width)
	v = (float64(height-1-y) + offset.Y) / float64(height)
	return u, v
}
