package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/mrv/internal/config"
	"github.com/JonMunkholm/mrv/internal/core"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3 fetches objects from S3 or an S3-compatible endpoint.
type S3 struct {
	client     *s3.Client
	downloader *manager.Downloader
	maxSize    int64
}

// NewS3 builds a client from the SDK's default chain, overridden by any
// region, endpoint or static credentials set in cfg.
func NewS3(ctx context.Context, cfg config.BlobConfig) (*S3, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	concurrency := cfg.DownloadConcurrency
	if concurrency <= 0 {
		concurrency = manager.DefaultDownloadConcurrency
	}
	downloader := manager.NewDownloader(client, func(d *manager.Downloader) {
		d.Concurrency = concurrency
	})

	return &S3{client: client, downloader: downloader, maxSize: cfg.MaxSize}, nil
}

// Fetch downloads the whole object into memory.
func (s *S3) Fetch(ctx context.Context, loc core.Locator) ([]byte, error) {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, s3Error(loc, err)
	}

	size := aws.ToInt64(head.ContentLength)
	if s.maxSize > 0 && size > s.maxSize {
		return nil, fmt.Errorf("%s is %d bytes: %w", loc, size, core.ErrBlobTooLarge)
	}

	buf := manager.NewWriteAtBuffer(make([]byte, 0, size))
	n, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, s3Error(loc, err)
	}
	return buf.Bytes()[:n], nil
}

func s3Error(loc core.Locator, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%s: %w", loc, core.ErrBlobNotFound)
		}
	}
	return fmt.Errorf("fetch %s: %w", loc, err)
}
