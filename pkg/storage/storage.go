// Package storage provides the media storage collaborator: binary
// content goes in, a stable reference comes back, and the core stores
// only the reference.
package storage

import (
	"context"
	"io"
)

// MediaStorage is the contract for media storage providers.
type MediaStorage interface {
	// Upload stores the content and returns a stable reference
	// (an absolute URL or a serving path). folder is a logical
	// grouping, e.g. "post_images" or "profile_pics".
	Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// Delete removes previously uploaded content by its reference.
	Delete(ctx context.Context, ref string) error
}
