package renderer

import (
	"image"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID      int             // Unique tile identifier
	Bounds  image.Rectangle // Pixel bounds in frame coordinates (row 0 at the top)
	Sampler core.Sampler    // Tile-specific random stream for deterministic results
}

// NewTile creates a new tile whose random stream depends only on seed and id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator integrator.Integrator
	width      int
	height     int
}

// NewTileRenderer creates a new tile renderer for a width x height image
func NewTileRenderer(world geometry.Hittable, camera *Camera, integratorInst integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
		height:     height,
	}
}

// RenderTileBounds takes samplesPerPixel samples for every pixel within bounds.
// Each tile has non-overlapping bounds, so writing into the shared pixelStats is safe.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, samplesPerPixel int) RenderStats {
	stats := RenderStats{MinSamples: samplesPerPixel}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Camera t runs bottom to top while frame rows run top to bottom
		j := tr.height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[y][i]
			for sample := 0; sample < samplesPerPixel; sample++ {
				s := (float64(i) + sampler.Get1D()) / float64(tr.width)
				t := (float64(j) + sampler.Get1D()) / float64(tr.height)
				ray := tr.camera.GetRay(s, t, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
			}

			stats.TotalPixels++
			stats.TotalSamples += samplesPerPixel
			stats.MinSamples = min(stats.MinSamples, ps.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, ps.SampleCount)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}
