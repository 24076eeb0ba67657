package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/publish"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	showHelp, listScenes, err := parseFlags(os.Args[1:], cfg, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Show help if requested
	if showHelp {
		printHelp(os.Stdout)
		return
	}
	if listScenes {
		printScenes(os.Stdout)
		return
	}

	logger := newLogger(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := run(ctx, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet binds flags to cfg; each flag defaults to the value already loaded
// from the environment
func newFlagSet(cfg *config.Config, out io.Writer) (fs *flag.FlagSet, help, list *bool) {
	fs = flag.NewFlagSet("sphere-tracer", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene to render (see -list)")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels (0 = scene default)")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels (0 = scene default)")
	fs.IntVar(&cfg.SamplesPerPixel, "samples", cfg.SamplesPerPixel, "Samples per pixel (0 = scene default)")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "Maximum ray bounces (0 = scene default)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for the scene and the sampler")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "Tile edge length in pixels")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output file (.ppm or .png), '-' for stdout")
	fs.StringVar(&cfg.Compression, "compress", cfg.Compression, "Output compression: none, gzip, zstd or snappy")
	fs.IntVar(&cfg.ThumbnailSize, "thumbnail", cfg.ThumbnailSize, "Longest edge of a PNG thumbnail (0 = none)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: quiet, info or debug")
	fs.Float64Var(&cfg.Camera.VFov, "vfov", cfg.Camera.VFov, "Vertical field of view in degrees (0 = scene default)")
	fs.Float64Var(&cfg.Camera.Aperture, "aperture", cfg.Camera.Aperture, "Lens aperture (0 = scene default)")
	fs.Float64Var(&cfg.Camera.FocusDistance, "focus-distance", cfg.Camera.FocusDistance, "Focus distance (0 = scene default)")
	vecFlag(fs, &cfg.Camera.LookFrom, "look-from", "Camera position x,y,z")
	vecFlag(fs, &cfg.Camera.LookAt, "look-at", "Camera target x,y,z")
	vecFlag(fs, &cfg.Camera.Up, "up", "Camera up direction x,y,z")
	help = fs.Bool("help", false, "Show help information")
	list = fs.Bool("list", false, "List available scenes")
	return fs, help, list
}

// parseFlags applies command line flags on top of cfg and validates the result
func parseFlags(args []string, cfg *config.Config, errOut io.Writer) (showHelp, listScenes bool, err error) {
	fs, help, list := newFlagSet(cfg, errOut)
	if err := fs.Parse(args); err != nil {
		return false, false, err
	}
	if *help || *list {
		return *help, *list, nil
	}
	return false, false, cfg.Validate()
}

func vecFlag(fs *flag.FlagSet, target *core.Vec3, name, usage string) {
	fs.Func(name, usage, func(raw string) error {
		v, err := config.ParseVec3(raw)
		if err != nil {
			return err
		}
		*target = v
		return nil
	})
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Sphere Tracer")
	fmt.Fprintln(w, "Usage: sphere-tracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs, _, _ := newFlagSet(config.Default(), w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	printScenes(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Every option can also be set with a RAYTRACER_* environment variable or a .env file.")
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}
}

// newLogger maps a log level to a logger; quiet discards everything
func newLogger(level string, out io.Writer) core.Logger {
	if level == config.LogQuiet {
		return core.NopLogger{}
	}
	return renderer.NewDefaultLogger(out)
}

// createScene builds the configured scene with camera overrides applied and fills
// unset image settings from the scene defaults
func createScene(cfg *config.Config) (*scene.Scene, error) {
	width, height := cfg.Width, cfg.Height

	// The aspect ratio follows the image when its size is overridden
	var aspect float64
	if width > 0 && height > 0 {
		aspect = float64(width) / float64(height)
	}

	s, err := scene.Create(cfg.Scene, cfg.Seed, renderer.CameraConfig{
		Center:        cfg.Camera.LookFrom,
		LookAt:        cfg.Camera.LookAt,
		Up:            cfg.Camera.Up,
		VFov:          cfg.Camera.VFov,
		AspectRatio:   aspect,
		Aperture:      cfg.Camera.Aperture,
		FocusDistance: cfg.Camera.FocusDistance,
	})
	if err != nil {
		return nil, err
	}

	if width == 0 {
		width = s.SamplingConfig.Width
	}
	if height == 0 {
		height = s.SamplingConfig.Height
	}
	if aspect == 0 {
		s.CameraConfig.AspectRatio = float64(width) / float64(height)
	}
	if err := renderer.ValidateCameraConfig(s.CameraConfig); err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	if cfg.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.SamplesPerPixel
	}
	if cfg.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = cfg.MaxDepth
	}
	return s, nil
}

// run renders the configured scene, writes it and publishes the written files.
// It returns the paths written.
func run(ctx context.Context, cfg *config.Config, logger core.Logger) ([]string, error) {
	s, err := createScene(cfg)
	if err != nil {
		return nil, err
	}
	logger.Printf("Using %s scene (%d spheres)\n", s.Name, s.GetPrimitiveCount())

	rtConfig := renderer.Config{
		Width:           s.SamplingConfig.Width,
		Height:          s.SamplingConfig.Height,
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        s.SamplingConfig.MaxDepth,
		TileSize:        cfg.TileSize,
		NumWorkers:      cfg.Workers,
		Seed:            cfg.Seed,
	}

	var onTile func(renderer.TileCompletionResult)
	if cfg.LogLevel == config.LogDebug {
		onTile = func(result renderer.TileCompletionResult) {
			logger.Printf("Tile %d/%d done %v\n", result.TileNumber, result.TotalTiles, result.Bounds)
		}
	}

	raytracer := renderer.NewRaytracer(s.World, s.NewCamera(), rtConfig, logger)
	frame, stats, err := raytracer.Render(ctx, onTile)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)
	logger.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(frame.Image()))

	codec, err := output.ParseCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}
	written, err := output.WriteFile(cfg.Output, frame, output.Options{
		Compression:   codec,
		ThumbnailSize: cfg.ThumbnailSize,
	})
	if err != nil {
		return written, fmt.Errorf("write output: %w", err)
	}
	for _, p := range written {
		if p != output.StdoutPath {
			logger.Printf("Render saved as %s\n", p)
		}
	}

	if !cfg.S3.Enabled() || cfg.Output == output.StdoutPath {
		return written, nil
	}

	publisher, err := publish.NewS3Publisher(cfg.S3, logger)
	if err != nil {
		return written, err
	}
	for _, p := range written {
		if _, err := publisher.Publish(ctx, p, ""); err != nil {
			return written, err
		}
	}
	return written, nil
}
