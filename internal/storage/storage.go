// Package storage defines the Asset Host: the external service that keeps
// uploaded binaries and serves them back by public URL.
// Swap implementations by changing the concrete type injected at startup:
// Cloudinary is the default, and the MinIO implementation works with any
// S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotConfigured is returned by every call on a host that is missing
// credentials or failed to initialise.
var ErrNotConfigured = errors.New("asset host not configured")

// Asset is an object held by the Asset Host.
type Asset struct {
	PublicID string `json:"public_id" example:"portfolio_uploads/essay"`
	URL      string `json:"url"       example:"https://res.cloudinary.com/demo/raw/upload/v1/portfolio_uploads/essay.pdf"`
}

// UploadInput wraps the payload forwarded to the host.
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Size        int64  // -1 when unknown
	PublicID    string // suggested identifier; empty lets the host pick one
}

// AssetHost is the interface for listing and uploading assets. Every
// implementation is scoped to one folder fixed at construction.
type AssetHost interface {
	// Search returns up to limit assets in the folder ordered by public id, descending.
	Search(ctx context.Context, limit int) ([]Asset, error)
	// Upload stores the payload in the folder and returns the canonical asset.
	Upload(ctx context.Context, in UploadInput) (Asset, error)
}

type disabledHost struct {
	reason string
}

// Disabled returns a host whose calls always fail with ErrNotConfigured.
func Disabled(reason string) AssetHost {
	return disabledHost{reason: reason}
}

func (d disabledHost) Search(context.Context, int) ([]Asset, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotConfigured, d.reason)
}

func (d disabledHost) Upload(context.Context, UploadInput) (Asset, error) {
	return Asset{}, fmt.Errorf("%w: %s", ErrNotConfigured, d.reason)
}
