package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Size of each square tile
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed of the per-tile random streams
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxDepth:        integrator.DefaultMaxDepth,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            0,
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	case c.TileSize <= 0:
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	return nil
}

// TileCompletionResult describes a finished tile for progress callbacks
type TileCompletionResult struct {
	TileID     int
	Bounds     image.Rectangle
	TileNumber int // Completion order (1-based)
	TotalTiles int
}

// Raytracer renders a world through a camera into a Frame
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using the path tracing integrator
func NewRaytracer(world geometry.Hittable, camera *Camera, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		config:     config,
		logger:     logger,
	}
}

// Render traces every pixel using the worker pool. Tiles own their random streams,
// so the result depends on the seed but not on the number of workers.
// onTile, if not nil, is called from the calling goroutine as tiles finish.
func (rt *Raytracer) Render(ctx context.Context, onTile func(TileCompletionResult)) (*Frame, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	width, height := rt.config.Width, rt.config.Height

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.integrator, width, height)
	pool := NewWorkerPool(tileRenderer, rt.config.SamplesPerPixel, rt.config.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel: %d tiles on %d workers\n",
		width, height, rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:       tile,
			TaskID:     taskID,
			PixelStats: pixelStats,
		})
	}

	var stats RenderStats
	var renderErr error
	for i := 0; i < len(tiles); i++ {
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

		stats.merge(result.Stats)
		if onTile != nil {
			tile := tiles[result.TaskID]
			onTile(TileCompletionResult{
				TileID:     tile.ID,
				Bounds:     tile.Bounds,
				TileNumber: stats.Tiles,
				TotalTiles: len(tiles),
			})
		}
	}
	pool.Stop()

	stats.Elapsed = time.Since(startTime)
	if renderErr != nil {
		rt.logger.Printf("Render stopped after %d of %d tiles: %v\n", stats.Tiles, len(tiles), renderErr)
		return nil, stats, renderErr
	}

	frame := NewFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			frame.Set(x, y, pixelStats[y][x].GetColor())
		}
	}

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Elapsed, stats.TotalSamples)
	return frame, stats, nil
}
