package renderer

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// recordingCamera remembers the image coordinates it was asked for
type recordingCamera struct {
	uvs []core.Vec2
}

func (c *recordingCamera) GetRay(u, v float64) core.Ray {
	c.uvs = append(c.uvs, core.NewVec2(u, v))
	return core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
}

func (c *recordingCamera) MoveCamera(_, _, _ core.Vec3, _, _ float64) {}

// constantIntegrator returns the same radiance for every ray
type constantIntegrator struct {
	color core.Vec3
}

func (c constantIntegrator) RayColor(core.Ray, core.Sampler) core.Vec3 {
	return c.color
}

func TestPixelUV(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		offset core.Vec2
		wantU  float64
		wantV  float64
	}{
		{"top left corner", 0, 0, core.NewVec2(0, 1), 0, 1},
		{"bottom left corner", 0, 9, core.NewVec2(0, 0), 0, 0},
		{"bottom right corner", 19, 9, core.NewVec2(1, 0), 1, 0},
		{"pixel center", 10, 5, core.NewVec2(0.5, 0.5), 10.5 / 20, 4.5 / 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := PixelUV(tt.x, tt.y, tt.offset, 20, 10)
			if math.Abs(u-tt.wantU) > 1e-12 || math.Abs(v-tt.wantV) > 1e-12 {
				t.Errorf("PixelUV = (%v, %v), want (%v, %v)", u, v, tt.wantU, tt.wantV)
			}
		})
	}
}

func TestTileRenderer_SamplesEveryPixel(t *testing.T) {
	const width, height, level = 8, 6, 3
	camera := &recordingCamera{}
	color := core.NewVec3(0.25, 0.5, 0.75)
	tr := NewTileRenderer(camera, constantIntegrator{color: color}, width, height, level)

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	bounds := image.Rect(2, 1, 6, 4)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	samples := tr.RenderTileBounds(bounds, pixelStats, sampler)

	wantSamples := bounds.Dx() * bounds.Dy() * level * level
	if samples != wantSamples || len(camera.uvs) != wantSamples {
		t.Fatalf("Took %d samples (%d camera rays), want %d", samples, len(camera.uvs), wantSamples)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ps := pixelStats[y][x]
			inside := image.Pt(x, y).In(bounds)
			switch {
			case inside && ps.SampleCount != level*level:
				t.Errorf("Pixel (%d,%d) has %d samples, want %d", x, y, ps.SampleCount, level*level)
			case inside && ps.GetColor().Subtract(color).Length() > 1e-12:
				t.Errorf("Pixel (%d,%d) color %v, want %v", x, y, ps.GetColor(), color)
			case !inside && ps.SampleCount != 0:
				t.Errorf("Pixel (%d,%d) outside the tile was sampled", x, y)
			}
		}
	}

	// Rays of a pixel stay inside that pixel's footprint
	for i, uv := range camera.uvs {
		pixel := i / (level * level)
		x := bounds.Min.X + pixel%bounds.Dx()
		y := bounds.Min.Y + pixel/bounds.Dx()
		px := uv.X * width
		py := uv.Y * height
		if px < float64(x) || px >= float64(x+1) || py < float64(height-1-y) || py >= float64(height-y) {
			t.Fatalf("Sample %d at (%v, %v) escapes pixel (%d,%d)", i, uv.X, uv.Y, x, y)
		}
	}
}
