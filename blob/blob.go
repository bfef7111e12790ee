// Package blob stores exported artifacts (HTML, PNG, SVG, PDF files) behind
// a pluggable interface. The filesystem driver is the default; S3 is
// available for shared setups.
package blob

import (
	"context"

	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/utils"
)

// BlobStore is the interface for pluggable artifact storage backends.
type BlobStore interface {
	Put(ctx context.Context, data []byte, mime, filename string) (url string, err error)
	Get(ctx context.Context, url string) ([]byte, error)
}

// NewBlobStoreFromConfig returns a BlobStore based on config; the filesystem
// driver in the default export directory when unconfigured.
func NewBlobStoreFromConfig(cfg *config.Config) (BlobStore, error) {
	driver := cfg.Blob.Driver
	if driver == "" || driver == constants.BlobDriverFilesystem {
		dir := cfg.Blob.Directory
		if dir == "" {
			dir = cfg.Export.Directory
		}
		if dir == "" {
			dir = config.DefaultExportDir
		}
		return NewFilesystemBlobStore(dir)
	}
	if driver == constants.BlobDriverS3 {
		if cfg.Blob.Bucket == "" {
			return nil, utils.Errorf("s3 blob driver requires a bucket")
		}
		return NewS3BlobStore(context.Background(), cfg.Blob.Bucket)
	}
	return nil, utils.Errorf("unsupported blob driver: %s", driver)
}
