package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// UploadTimeout bounds a single object upload.
const UploadTimeout = 60 * time.Second

// S3Publisher uploads rendered files to an S3 compatible bucket.
type S3Publisher struct {
	client s3iface.S3API
	bucket string
	prefix string
	logger core.Logger
}

// NewS3Publisher creates a session from cfg. Static credentials are used when an
// access key is configured, otherwise the default AWS credential chain applies.
func NewS3Publisher(cfg config.S3Config, logger core.Logger) (*S3Publisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("s3 bucket is not configured")
	}

	awsConfig := &aws.Config{}
	if cfg.Region != "" {
		awsConfig.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}

	return NewS3PublisherWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix, logger), nil
}

// NewS3PublisherWithClient wraps an existing client
func NewS3PublisherWithClient(client s3iface.S3API, bucket, prefix string, logger core.Logger) *S3Publisher {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// Key returns the object key for a local file name
func (p *S3Publisher) Key(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish uploads the file at localPath under key, prefixed with the configured
// prefix. An empty key uses the file's base name.
func (p *S3Publisher) Publish(ctx context.Context, localPath, key string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", localPath, err)
	}

	if key == "" {
		key = filepath.Base(localPath)
	}
	key = p.Key(key)

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType(localPath)),
	}
	if encoding := ContentEncoding(localPath); encoding != "" {
		input.ContentEncoding = aws.String(encoding)
	}

	if _, err := p.client.PutObjectWithContext(ctx, input, request.WithResponseReadTimeout(UploadTimeout)); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	p.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, p.bucket, size)
	return key, nil
}

// ContentType derives the MIME type from the image extension, ignoring any
// compression suffix
func ContentType(name string) string {
	name = strings.ToLower(name)
	for _, ext := range []string{".gz", ".zst", ".sz"} {
		name = strings.TrimSuffix(name, ext)
	}

	switch filepath.Ext(name) {
	case ".png":
		return "image/png"
	case ".ppm":
		return "image/x-portable-pixmap"
	default:
		return "application/octet-stream"
	}
}

// ContentEncoding returns the HTTP content encoding of a compressed file
func ContentEncoding(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return "gzip"
	case ".zst":
		return "zstd"
	case ".sz":
		return "x-snappy-framed"
	default:
		return ""
	}
}
