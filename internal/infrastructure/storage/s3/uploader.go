package s3

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/inkwell-blog/inkwell/internal/core/ports"
)

// Config captures the settings of the S3-compatible asset host.
type Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS default, for MinIO-style deployments.
	Endpoint string
	// PublicBaseURL is the prefix the bucket's objects are served from.
	PublicBaseURL string
}

// Uploader stores avatars and thumbnails in an S3 bucket and hands back the
// public URL the asset is served from.
type Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload streams the file into the bucket under a date-partitioned random
// key and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, folder string, file ports.FileUpload) (string, error) {
	key := storageKey(folder, file.Filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file.Reader,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}

	return u.baseURL + "/" + key, nil
}

// storageKey builds keys like avatars/2026/9/1/<uuid>.png. The original
// filename contributes only its extension.
func storageKey(folder, filename string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%d/%d/%s%s", folder, d.Year(), d.Month(), d.Day(), uuid.New(), path.Ext(filename))
}
