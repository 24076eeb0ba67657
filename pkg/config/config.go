package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
)

const (
	// DefaultTileSize is the edge length of a render tile.
	DefaultTileSize = 32
	// DefaultScene is rendered when no scene is named.
	DefaultScene = "random"
	// DefaultOutput is where the image is written.
	DefaultOutput = "output/render.ppm"
	// DefaultCompression leaves the image uncompressed.
	DefaultCompression = "none"
	// DefaultLogLevel controls verbosity.
	DefaultLogLevel = "info"
	// DefaultEnvFile is read before the environment, if present.
	DefaultEnvFile = ".env"
)

// Log levels
const (
	LogQuiet = "quiet"
	LogInfo  = "info"
	LogDebug = "debug"
)

// Config captures all runtime settings of the renderer. Zero image size, sample
// count or depth selects the scene's own default.
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64
	Scene           string
	Workers         int // 0 uses one worker per CPU
	TileSize        int
	Output          string
	Compression     string
	ThumbnailSize   int // 0 disables the thumbnail
	LogLevel        string
	Camera          CameraOverrides
	S3              S3Config
}

// CameraOverrides replace scene camera defaults. Zero values keep the default.
type CameraOverrides struct {
	LookFrom      core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	VFov          float64
	Aperture      float64
	FocusDistance float64
}

// S3Config locates the bucket rendered images are published to.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// Enabled reports whether publishing is configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Scene:       DefaultScene,
		TileSize:    DefaultTileSize,
		Output:      DefaultOutput,
		Compression: DefaultCompression,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads the optional env file named by RAYTRACER_ENV_FILE and then the
// environment, applying defaults and returning descriptive errors for invalid
// overrides. Variables already set in the environment win over the env file.
func Load() (*Config, error) {
	if err := LoadEnvFile(getString("RAYTRACER_ENV_FILE", DefaultEnvFile)); err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.Scene = getString("RAYTRACER_SCENE", DefaultScene)
	cfg.Output = getString("RAYTRACER_OUTPUT", DefaultOutput)
	cfg.Compression = getString("RAYTRACER_COMPRESSION", DefaultCompression)
	cfg.LogLevel = strings.ToLower(getString("RAYTRACER_LOG_LEVEL", DefaultLogLevel))
	cfg.S3 = S3Config{
		Bucket:    strings.TrimSpace(os.Getenv("RAYTRACER_S3_BUCKET")),
		Region:    strings.TrimSpace(os.Getenv("RAYTRACER_S3_REGION")),
		Endpoint:  strings.TrimSpace(os.Getenv("RAYTRACER_S3_ENDPOINT")),
		AccessKey: strings.TrimSpace(os.Getenv("RAYTRACER_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("RAYTRACER_S3_SECRET_KEY")),
		Prefix:    strings.TrimSpace(os.Getenv("RAYTRACER_S3_PREFIX")),
	}

	var problems []string

	parseInt := func(key string, min int, target *int) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < min {
			problems = append(problems, fmt.Sprintf("%s must be an integer >= %d, got %q", key, min, raw))
			return
		}
		*target = value
	}
	parseFloat := func(key string, target *float64) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("%s must be a non-negative number, got %q", key, raw))
			return
		}
		*target = value
	}
	parseVec := func(key string, target *core.Vec3) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		value, err := ParseVec3(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*target = value
	}

	parseInt("RAYTRACER_WIDTH", 0, &cfg.Width)
	parseInt("RAYTRACER_HEIGHT", 0, &cfg.Height)
	parseInt("RAYTRACER_SAMPLES", 0, &cfg.SamplesPerPixel)
	parseInt("RAYTRACER_MAX_DEPTH", 0, &cfg.MaxDepth)
	parseInt("RAYTRACER_WORKERS", 0, &cfg.Workers)
	parseInt("RAYTRACER_TILE_SIZE", 1, &cfg.TileSize)
	parseInt("RAYTRACER_THUMBNAIL", 0, &cfg.ThumbnailSize)

	if raw := strings.TrimSpace(os.Getenv("RAYTRACER_SEED")); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			problems = append(problems, fmt.Sprintf("RAYTRACER_SEED must be an integer, got %q", raw))
		} else {
			cfg.Seed = value
		}
	}

	parseVec("RAYTRACER_LOOK_FROM", &cfg.Camera.LookFrom)
	parseVec("RAYTRACER_LOOK_AT", &cfg.Camera.LookAt)
	parseVec("RAYTRACER_UP", &cfg.Camera.Up)
	parseFloat("RAYTRACER_VFOV", &cfg.Camera.VFov)
	parseFloat("RAYTRACER_APERTURE", &cfg.Camera.Aperture)
	parseFloat("RAYTRACER_FOCUS_DISTANCE", &cfg.Camera.FocusDistance)

	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Validate reports every setting that cannot be rendered.
func (c *Config) Validate() error {
	var problems []string

	if c.Width < 0 || c.Height < 0 {
		problems = append(problems, fmt.Sprintf("image size must not be negative, got %dx%d", c.Width, c.Height))
	}
	if c.SamplesPerPixel < 0 {
		problems = append(problems, fmt.Sprintf("samples per pixel must not be negative, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth < 0 {
		problems = append(problems, fmt.Sprintf("max depth must not be negative, got %d", c.MaxDepth))
	}
	if c.TileSize <= 0 {
		problems = append(problems, fmt.Sprintf("tile size must be positive, got %d", c.TileSize))
	}
	if c.Workers < 0 {
		problems = append(problems, fmt.Sprintf("workers must not be negative, got %d", c.Workers))
	}
	if c.ThumbnailSize < 0 {
		problems = append(problems, fmt.Sprintf("thumbnail size must not be negative, got %d", c.ThumbnailSize))
	}
	if c.Output == "" {
		problems = append(problems, "output path must not be empty")
	}
	if _, err := output.ParseCodec(c.Compression); err != nil {
		problems = append(problems, err.Error())
	}
	switch c.LogLevel {
	case LogQuiet, LogInfo, LogDebug:
	default:
		problems = append(problems, fmt.Sprintf("log level must be quiet, info or debug, got %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ParseVec3 parses "x,y,z"
func ParseVec3(raw string) (core.Vec3, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", raw)
	}

	var values [3]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid component %q in %q", part, raw)
		}
		values[i] = value
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
