package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioHost implements AssetHost using a MinIO (or any S3-compatible) backend.
// Objects live at "<folder>/<public id><ext>"; the public id keeps the folder
// prefix, matching how Cloudinary reports ids.
type MinioHost struct {
	client     *minio.Client
	bucket     string
	folder     string
	publicBase string
}

// NewMinioHost creates a MinIO client, ensures the bucket exists with a public-read
// policy, and returns a ready-to-use MinioHost.
func NewMinioHost(ctx context.Context, rawEndpoint, accessKey, secretKey, bucket, folder, publicBase string) (*MinioHost, error) {
	endpoint, secure, err := normaliseEndpoint(rawEndpoint)
	if err != nil {
		return nil, fmt.Errorf("storage endpoint: %w", err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		log.Printf("storage: created bucket %q", bucket)
	}

	if err := client.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	return &MinioHost{
		client:     client,
		bucket:     bucket,
		folder:     strings.Trim(folder, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Search lists the folder and returns the newest-named limit objects.
// S3 has no server-side sort, so the whole folder listing is read.
func (s *MinioHost) Search(ctx context.Context, limit int) ([]Asset, error) {
	var assets []Asset
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.folder + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		assets = append(assets, Asset{
			PublicID: publicIDFromKey(obj.Key),
			URL:      s.PublicURL(obj.Key),
		})
	}
	return sortAndLimit(assets, limit), nil
}

// Upload streams in.Body to MinIO. in.Size must be the exact byte count
// (pass -1 only if the size is genuinely unknown; MinIO will buffer it).
func (s *MinioHost) Upload(ctx context.Context, in UploadInput) (Asset, error) {
	key := objectKey(s.folder, in.PublicID, in.Filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, in.Body, in.Size, minio.PutObjectOptions{
		ContentType: in.ContentType,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("put object %q: %w", key, err)
	}
	return Asset{PublicID: publicIDFromKey(key), URL: s.PublicURL(key)}, nil
}

// PublicURL returns the browser-accessible URL for the given key.
// For local MinIO: "http://localhost:9000/assets/portfolio_uploads/essay.pdf"
func (s *MinioHost) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicBase + "/" + strings.Join(segments, "/")
}

// objectKey builds "<folder>/<id><ext>", generating an id when none is suggested.
func objectKey(folder, publicID, filename string) string {
	id := strings.Trim(publicID, "/")
	if id == "" {
		id = uuid.NewString()
	}
	return folder + "/" + id + strings.ToLower(path.Ext(filename))
}

func publicIDFromKey(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}

func sortAndLimit(assets []Asset, limit int) []Asset {
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].PublicID > assets[j].PublicID
	})
	if limit > 0 && len(assets) > limit {
		assets = assets[:limit]
	}
	return assets
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
