// Package storage abstracts the external object store holding campground
// images. The store hands back {URL, Filename} records; Filename is the
// opaque key later used for deletion.
package storage

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
)

// Object describes one stored image.
type Object struct {
	URL      string
	Filename string
}

// Store is the external object-storage collaborator. Delete must be
// idempotent: removing an absent key is not an error.
type Store interface {
	Upload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (Object, error)
	Delete(ctx context.Context, filename string) error
}

// ObjectKey builds a collision-free storage key for an uploaded file,
// keeping the original extension for content-type sniffing downstream.
func ObjectKey(originalName string) string {
	return "campgrounds/" + uuid.NewString() + path.Ext(originalName)
}
