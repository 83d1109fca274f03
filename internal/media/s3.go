// Package media stores poll images in an S3-compatible bucket and hands back
// durable public URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/zkpolls/zkpolls-backend/internal/config"
)

type Store struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

func New(ctx context.Context, cfg config.MediaConfig) (*Store, error) {
	const op = "media.New"

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Store{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
	}, nil
}

// Upload writes the object and returns its public URL.
func (s *Store) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	const op = "media.Upload"

	key := storageKey(name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key), nil
}

func storageKey(name string) string {
	d := time.Now()
	return fmt.Sprintf("polls/%d/%d/%d/%v-%s", d.Year(), d.Month(), d.Day(), uuid.New(), name)
}
