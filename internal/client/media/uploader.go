package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

var ErrUnsupportedImage = errors.New("unsupported image type")

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Options configures an Uploader. PublicBaseURL is the backend URL the
// public object links are built on.
type Options struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

type Uploader struct {
	opts   Options
	client *s3.Client
	now    func() time.Time
}

// NewUploader loads the AWS configuration with static credentials and
// builds a path-style client for the storage endpoint.
func NewUploader(ctx context.Context, opts Options) (*Uploader, error) {
	if opts.Bucket == "" {
		return nil, errors.New("cover bucket is empty")
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})

	return &Uploader{opts: opts, client: client, now: time.Now}, nil
}

// Key returns a fresh object key for a file with extension ext.
func (u *Uploader) Key(ext string) string {
	d := u.now().UTC()
	return fmt.Sprintf("covers/%04d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

// PublicURL is where the backend serves key from the public bucket.
func (u *Uploader) PublicURL(key string) string {
	base := strings.TrimRight(u.opts.PublicBaseURL, "/")
	return base + "/storage/v1/object/public/" + u.opts.Bucket + "/" + key
}

// Upload stores the image at path and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	contentType, ok := imageTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open cover: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat cover: %w", err)
	}

	key := u.Key(ext)
	_, err = putObject(u.client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.opts.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put cover %s: %w", key, err)
	}

	return u.PublicURL(key), nil
}
