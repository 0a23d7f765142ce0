package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryHost keeps asset metadata in process and discards the bytes. It backs
// ASSET_BACKEND=memory for local development.
type MemoryHost struct {
	mu         sync.Mutex
	folder     string
	publicBase string
	assets     []Asset
}

// NewMemoryHost returns an empty in-process host.
func NewMemoryHost(folder, publicBase string) *MemoryHost {
	return &MemoryHost{
		folder:     strings.Trim(folder, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// Search returns up to limit stored assets, newest public id first.
func (m *MemoryHost) Search(ctx context.Context, limit int) ([]Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	assets := make([]Asset, len(m.assets))
	copy(assets, m.assets)
	m.mu.Unlock()
	return sortAndLimit(assets, limit), nil
}

// Upload drains in.Body and records the asset, replacing any with the same public id.
func (m *MemoryHost) Upload(ctx context.Context, in UploadInput) (Asset, error) {
	if _, err := io.Copy(io.Discard, in.Body); err != nil {
		return Asset{}, fmt.Errorf("read upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	key := objectKey(m.folder, in.PublicID, in.Filename)
	asset := Asset{PublicID: publicIDFromKey(key), URL: m.publicBase + "/" + key}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assets {
		if m.assets[i].PublicID == asset.PublicID {
			m.assets[i] = asset
			return asset, nil
		}
	}
	m.assets = append(m.assets, asset)
	return asset, nil
}

var (
	_ AssetHost = (*MemoryHost)(nil)
	_ AssetHost = (*MinioHost)(nil)
	_ AssetHost = (*CloudinaryHost)(nil)
)
