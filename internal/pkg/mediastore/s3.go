package mediastore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MediaStore persists proof evidence on any S3-compatible bucket and hands
// back the public URL stored on the Proof row.
type MediaStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	BaseURL         string
}

func New(ctx context.Context, cfg *Config) (*MediaStore, error) {
	if cfg.Region == "" {
		cfg.Region = "auto"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load media store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s/%s", cfg.Endpoint, cfg.Bucket)
	}

	return &MediaStore{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// UploadProofMedia stores one multipart upload under a fresh uuid key and
// returns its URL.
func (store *MediaStore) UploadProofMedia(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := fmt.Sprintf("proofs/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))

	_, err = store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("upload proof media: %w", err)
	}

	return fmt.Sprintf("%s/%s", store.baseURL, key), nil
}
