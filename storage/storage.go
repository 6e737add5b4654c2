// Package storage persists uploaded vehicle photos, registration cards and
// payment proofs. Objects go to an S3-compatible bucket or to local disk
// depending on storage.type
package storage

import (
	"context"
	"io"

	"github.com/spf13/viper"
)

type Store interface {
	// Save writes the object under key and returns nothing but an error.
	// Keys are stored on the owning row, never full URLs
	Save(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
}

func New() (Store, error) {
	if viper.GetString("storage.type") == "s3" {
		return NewS3()
	}

	return NewLocal(viper.GetString("storage.local_dir"))
}
