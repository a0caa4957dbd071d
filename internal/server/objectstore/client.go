// Package objectstore wraps the S3 client used by the orchestration layer:
// minting presigned write URLs and writing zero-byte folder markers.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/okomarov/driveup/internal/server/config"
)

// ErrNotConfigured is returned when the object store settings are missing:
// without a bucket no credential can be issued at all.
var ErrNotConfigured = errors.New("object store is not configured")

// Seams for tests.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// Client issues scoped write credentials and writes marker objects. It keeps
// no local state beyond the connection settings.
type Client struct {
	config *sc.Config
}

// NewClient validates the object-store settings and returns a Client.
// A missing bucket is a fatal misconfiguration, reported immediately rather
// than on first use.
func NewClient(cfg *sc.Config) (*Client, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("%w: bucket name is empty", ErrNotConfigured)
	}
	return &Client{config: cfg}, nil
}

func (c *Client) s3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.config.S3AccessKey,
			c.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.config.S3BaseEndpoint)
	}), nil
}

// PresignPutURL mints a write credential for exactly the given key, scoped
// to contentType and valid for ttl. The client uploads directly against the
// returned URL; no bytes pass through this server.
func (c *Client) PresignPutURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	client, err := c.s3Client(ctx)
	if err != nil {
		return "", fmt.Errorf("object store config error: %w", err)
	}

	req, err := presignPutObject(newS3PresignClient(client), ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.config.S3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign error: %w", err)
	}

	return req.URL, nil
}

// PutFolderMarker writes the zero-byte object that denotes folder existence
// in the flat key namespace.
func (c *Client) PutFolderMarker(ctx context.Context, key string) error {
	client, err := c.s3Client(ctx)
	if err != nil {
		return fmt.Errorf("object store config error: %w", err)
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.config.S3Bucket),
		Key:    aws.String(key),
		Body:   strings.NewReader(""),
	})
	if err != nil {
		return fmt.Errorf("put folder marker: %w", err)
	}

	return nil
}
