// Package asset relays file uploads and listings to the Asset Host.
package asset

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/folio/service/internal/storage"
)

// maxListedAssets is the number of assets returned by ListFiles.
const maxListedAssets = 50

// Service contains the logic for listing and uploading assets. Nothing is
// committed locally; the Asset Host owns every uploaded byte.
type Service struct {
	host    storage.AssetHost
	timeout time.Duration
}

// NewService creates a new asset Service. timeout bounds each call to host.
func NewService(host storage.AssetHost, timeout time.Duration) *Service {
	return &Service{host: host, timeout: timeout}
}

// ListFiles returns the file names of the newest assets, ordered by
// descending public id.
func (s *Service) ListFiles(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assets, err := s.host.Search(ctx, maxListedAssets)
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}

	names := make([]string, 0, len(assets))
	for _, a := range assets {
		names = append(names, fileNameFromURL(a.URL))
	}
	return names, nil
}

// Upload forwards body to the host, suggesting the file name without its
// extension as the public id.
func (s *Service) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (storage.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	asset, err := s.host.Upload(ctx, storage.UploadInput{
		Filename:    filename,
		ContentType: contentType,
		Body:        body,
		Size:        size,
		PublicID:    suggestedPublicID(filename),
	})
	if err != nil {
		return storage.Asset{}, fmt.Errorf("upload asset: %w", err)
	}
	return asset, nil
}

// fileNameFromURL returns the last path segment of a public asset URL.
func fileNameFromURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return raw[strings.LastIndex(raw, "/")+1:]
}

// suggestedPublicID strips directories and the extension from a client file name.
// Names made only of dots yield "" so the host picks an id.
func suggestedPublicID(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "/" {
		return ""
	}
	id := strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
	if strings.Trim(id, ".") == "" {
		return ""
	}
	return id
}
