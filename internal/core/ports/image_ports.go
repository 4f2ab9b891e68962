package ports

import (
	"context"
	"io"
)

// ImageStore persists uploaded images and returns the public URL they are
// served under. Storage itself is a collaborator concern; the core only
// records the returned URL.
type ImageStore interface {
	Save(ctx context.Context, name string, image io.Reader) (url string, err error)
}
