package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/d3flow/mindflow/utils"
)

// S3BlobStore implements BlobStore using AWS S3. Not the default; use only
// when configured explicitly.
type S3BlobStore struct {
	client *s3.Client
	bucket string
}

var _ BlobStore = (*S3BlobStore)(nil)

// NewS3BlobStore creates an S3BlobStore using the ambient AWS configuration
// (environment, shared config, instance role).
func NewS3BlobStore(ctx context.Context, bucket string) (*S3BlobStore, error) {
	if bucket == "" {
		return nil, utils.Errorf("bucket must be non-empty")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &S3BlobStore{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Put uploads data to S3 and returns its URL.
func (s *S3BlobStore) Put(ctx context.Context, data []byte, mime, filename string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(filename),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mime),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, filename), nil
}

// Get retrieves data from S3 by URL.
func (s *S3BlobStore) Get(ctx context.Context, url string) ([]byte, error) {
	// Expect url format: s3://bucket/key
	rest, ok := strings.CutPrefix(url, "s3://")
	if !ok {
		return nil, utils.Errorf("invalid s3 URL: %s", url)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return nil, utils.Errorf("invalid s3 URL: %s", url)
	}
	if bucket != s.bucket {
		return nil, utils.Errorf("requested bucket %s does not match configured bucket %s", bucket, s.bucket)
	}
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
