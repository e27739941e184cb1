package renderer

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Camera rays per pixel
	Tiles           int           // Number of tiles rendered
	TilesPerWorker  map[int]int   // Tiles completed by each worker ID
	Elapsed         time.Duration // Wall-clock time of the render
}

// AverageSamples returns the mean number of samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// Table returns a tabular representation of the statistics
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "% of frame"})

	workers := lo.Keys(s.TilesPerWorker)
	sort.Ints(workers)
	for _, id := range workers {
		tiles := s.TilesPerWorker[id]
		table.Append([]string{
			fmt.Sprintf("%d", id),
			fmt.Sprintf("%d", tiles),
			fmt.Sprintf("%02.1f %%", 100*float64(tiles)/float64(max(1, s.Tiles))),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%dx%d", s.Width, s.Height),
		fmt.Sprintf("%d spp", s.SamplesPerPixel),
		s.Elapsed.Round(time.Millisecond).String(),
	})

	table.Render()
	return buf.String()
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
