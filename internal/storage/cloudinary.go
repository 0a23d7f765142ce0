package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/admin/search"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// cloudinaryAPI is the slice of the Cloudinary SDK the host relies on.
type cloudinaryAPI interface {
	Search(ctx context.Context, q search.Query) (*admin.SearchResult, error)
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

type sdkClient struct {
	cld *cloudinary.Cloudinary
}

func (c sdkClient) Search(ctx context.Context, q search.Query) (*admin.SearchResult, error) {
	return c.cld.Admin.Search(ctx, q)
}

func (c sdkClient) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	return c.cld.Upload.Upload(ctx, file, params)
}

// CloudinaryHost implements AssetHost on top of the Cloudinary Search and
// Upload APIs.
type CloudinaryHost struct {
	api    cloudinaryAPI
	folder string
}

// NewCloudinaryHost builds a host authenticated with the account's cloud name,
// API key and API secret. URLs are always https.
func NewCloudinaryHost(cloudName, apiKey, apiSecret, folder string) (*CloudinaryHost, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("create cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryHost{api: sdkClient{cld: cld}, folder: folder}, nil
}

// Search runs "folder:<folder>" sorted by public_id descending.
func (h *CloudinaryHost) Search(ctx context.Context, limit int) ([]Asset, error) {
	res, err := h.api.Search(ctx, search.Query{
		Expression: "folder:" + h.folder,
		SortBy:     []search.SortByField{{"public_id": search.Descending}},
		MaxResults: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary search: %w", err)
	}
	if res == nil {
		return nil, errors.New("cloudinary search: empty response")
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary search: %s", res.Error.Message)
	}

	assets := make([]Asset, 0, len(res.Assets))
	for _, a := range res.Assets {
		assets = append(assets, Asset{PublicID: a.PublicID, URL: a.SecureURL})
	}
	return assets, nil
}

// Upload streams in.Body to Cloudinary inside the folder.
func (h *CloudinaryHost) Upload(ctx context.Context, in UploadInput) (Asset, error) {
	res, err := h.api.Upload(ctx, in.Body, uploader.UploadParams{
		Folder:   h.folder,
		PublicID: in.PublicID,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res == nil {
		return Asset{}, errors.New("cloudinary upload: empty response")
	}
	if res.Error.Message != "" {
		return Asset{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" || res.PublicID == "" {
		return Asset{}, errors.New("cloudinary upload: response missing secure_url or public_id")
	}
	return Asset{PublicID: res.PublicID, URL: res.SecureURL}, nil
}
