package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const listObjectsXML = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>assets</Name>
  <Prefix>portfolio_uploads/</Prefix>
  <KeyCount>3</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>portfolio_uploads/alpha.pdf</Key><LastModified>2024-05-01T10:00:00.000Z</LastModified><ETag>"a1"</ETag><Size>8</Size><StorageClass>STANDARD</StorageClass></Contents>
  <Contents><Key>portfolio_uploads/gamma.png</Key><LastModified>2024-05-02T10:00:00.000Z</LastModified><ETag>"g1"</ETag><Size>8</Size><StorageClass>STANDARD</StorageClass></Contents>
  <Contents><Key>portfolio_uploads/beta notes.txt</Key><LastModified>2024-05-03T10:00:00.000Z</LastModified><ETag>"b1"</ETag><Size>8</Size><StorageClass>STANDARD</StorageClass></Contents>
</ListBucketResult>`

// s3Stub answers the two object calls MinioHost makes after start-up.
type s3Stub struct {
	mu       sync.Mutex
	prefix   string
	putPath  string
	putType  string
	putBody  string
	putCalls int
}

func (s *s3Stub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		s.prefix = r.URL.Query().Get("prefix")
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, listObjectsXML)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.putCalls++
		s.putPath = r.URL.Path
		s.putType = r.Header.Get("Content-Type")
		s.putBody = string(body)
		s.mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newStubMinioHost(t *testing.T, stub http.Handler) *MinioHost {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Region: "us-east-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	return &MinioHost{
		client:     client,
		bucket:     "assets",
		folder:     "portfolio_uploads",
		publicBase: "http://localhost:9000/assets",
	}
}

func TestMinioHostSearch(t *testing.T) {
	stub := &s3Stub{}
	host := newStubMinioHost(t, stub)

	assets, err := host.Search(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.prefix != "portfolio_uploads/" {
		t.Errorf("listed prefix = %q, want portfolio_uploads/", stub.prefix)
	}
	want := []Asset{
		{PublicID: "portfolio_uploads/gamma", URL: "http://localhost:9000/assets/portfolio_uploads/gamma.png"},
		{PublicID: "portfolio_uploads/beta notes", URL: "http://localhost:9000/assets/portfolio_uploads/beta%20notes.txt"},
	}
	if len(assets) != len(want) {
		t.Fatalf("assets = %+v, want %+v", assets, want)
	}
	for i := range want {
		if assets[i] != want[i] {
			t.Errorf("assets[%d] = %+v, want %+v", i, assets[i], want[i])
		}
	}
}

func TestMinioHostSearchError(t *testing.T) {
	host := newStubMinioHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>AccessDenied</Code><Message>Access Denied.</Message><BucketName>assets</BucketName></Error>`)
	}))

	if _, err := host.Search(context.Background(), 10); err == nil {
		t.Fatal("expected an error from a denied listing")
	}
}

func TestMinioHostUpload(t *testing.T) {
	stub := &s3Stub{}
	host := newStubMinioHost(t, stub)

	content := "%PDF-1.7 essay body"
	asset, err := host.Upload(context.Background(), UploadInput{
		Filename:    "Essay.PDF",
		ContentType: "application/pdf",
		Body:        strings.NewReader(content),
		Size:        int64(len(content)),
		PublicID:    "essay",
	})
	if err != nil {
		t.Fatal(err)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.putCalls != 1 {
		t.Fatalf("put calls = %d, want 1", stub.putCalls)
	}
	if stub.putPath != "/assets/portfolio_uploads/essay.pdf" {
		t.Errorf("put path = %q, want /assets/portfolio_uploads/essay.pdf", stub.putPath)
	}
	if stub.putType != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", stub.putType)
	}
	// Plain-HTTP uploads may be framed with chunk signatures.
	if !strings.Contains(stub.putBody, content) {
		t.Errorf("put body %q does not carry the upload", stub.putBody)
	}
	if asset.PublicID != "portfolio_uploads/essay" {
		t.Errorf("public id = %q, want portfolio_uploads/essay", asset.PublicID)
	}
	if asset.URL != "http://localhost:9000/assets/portfolio_uploads/essay.pdf" {
		t.Errorf("url = %q", asset.URL)
	}
}
