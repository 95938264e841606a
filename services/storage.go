package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/studio-site-backend/config"
)

// ImageStore persists an uploaded image and returns the URL it is served from.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore keeps uploads in an S3 bucket.
type S3ImageStore struct {
	client        s3PutAPI
	bucket        string
	region        string
	prefix        string
	publicBaseURL string
}

func NewS3ImageStore(ctx context.Context, cfg map[string]string) (*S3ImageStore, error) {
	region := config.GetString(cfg, "S3_REGION", config.GetString(cfg, "AWS_REGION", "us-east-1"))
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	pathStyle := config.GetBool(cfg, "S3_PATH_STYLE", false)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = pathStyle
	})

	return &S3ImageStore{
		client:        client,
		bucket:        config.GetString(cfg, "S3_BUCKET", ""),
		region:        region,
		prefix:        config.GetString(cfg, "S3_PREFIX", "uploads/"),
		publicBaseURL: strings.TrimSuffix(config.GetString(cfg, "S3_PUBLIC_BASE_URL", ""), "/"),
	}, nil
}

func (s *S3ImageStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	objectKey := s.prefix + key
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", err
	}

	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", s.publicBaseURL, objectKey), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey), nil
}

// LocalImageStore writes uploads below dir; the API serves them under urlPrefix.
type LocalImageStore struct {
	dir       string
	urlPrefix string
	create    func(name string) (io.WriteCloser, error)
}

func NewLocalImageStore(dir, urlPrefix string) *LocalImageStore {
	return &LocalImageStore{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		create:    func(name string) (io.WriteCloser, error) { return os.Create(name) },
	}
}

func (s *LocalImageStore) Dir() string {
	return s.dir
}

func (s *LocalImageStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating upload directory %s: %w", s.dir, err)
	}

	destination := filepath.Join(s.dir, key)
	outFile, err := s.create(destination)
	if err != nil {
		return "", fmt.Errorf("error creating file %s: %w", destination, err)
	}

	if _, err := io.Copy(outFile, body); err != nil {
		_ = outFile.Close()
		_ = os.Remove(destination)
		return "", fmt.Errorf("error writing to file %s: %w", destination, err)
	}
	if err := outFile.Close(); err != nil {
		_ = os.Remove(destination)
		return "", fmt.Errorf("error closing file %s: %w", destination, err)
	}

	return fmt.Sprintf("%s/%s", s.urlPrefix, key), nil
}
