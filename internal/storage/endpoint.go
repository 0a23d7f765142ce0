package storage

import (
	"errors"
	"net/url"
	"strings"
)

// normaliseEndpoint accepts either "minio:9000" or "http://minio:9000" /
// "https://minio:9000" and returns the host:port minio-go expects.
func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, errors.New("empty endpoint")
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, errors.New("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, errors.New("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	// Bare host:port, insecure for local MinIO.
	return raw, false, nil
}
