package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds the configuration required to connect to S3-compatible object storage.
type S3Config struct {
	BucketName      string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Store persists each collection as a single JSON object in an S3-compatible
// bucket, fetched and replaced wholesale per operation.
type S3Store struct {
	cfg      S3Config
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Store initializes the S3 client using a custom configuration that supports
// S3-compatible endpoints.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	sdkCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client configuration: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &S3Store{
		cfg:      cfg,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

func (s *S3Store) key(name string) string {
	return name + ".json"
}

// Load fetches the named collection object into dst. A missing object is
// initialized as an empty sequence.
func (s *S3Store) Load(ctx context.Context, name string, dst any) error {
	key := s.key(name)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.cfg.BucketName,
		Key:    &key,
	})

	var raw []byte

	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		if err := s.put(ctx, name, []byte("[]")); err != nil {
			return err
		}
		raw = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("failed to fetch collection %s: %w", name, err)
	} else {
		defer out.Body.Close()
		raw, err = io.ReadAll(out.Body)
		if err != nil {
			return fmt.Errorf("failed to read collection %s: %w", name, err)
		}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("collection %s is corrupt: %w", name, err)
	}

	return nil
}

// Save replaces the named collection object with the given records.
func (s *S3Store) Save(ctx context.Context, name string, records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}

	return s.put(ctx, name, raw)
}

func (s *S3Store) put(ctx context.Context, name string, raw []byte) error {
	key := s.key(name)
	contentType := "application/json"

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &s.cfg.BucketName,
		Key:         &key,
		Body:        bytes.NewReader(raw),
		ContentType: &contentType,
	})

	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}

	return nil
}
