// Package boundary resolves district boundary documents into renderable
// rings.  A Store fetches the raw GeoJSON document for a district code from
// one of three backends (local directory, upstream HTTP service, MinIO
// bucket); the Loader normalizes the geometry and places a marker point.
package boundary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"

	"github.com/rxprasetya/sebaran-penjualan/internal/config"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// Store fetches the raw boundary document for one district code.
// Implementations return ErrCodeBoundaryNotFound when no resource exists for
// the code and ErrCodeTransport for backend failures.
type Store interface {
	Fetch(ctx context.Context, districtCode string) ([]byte, error)
}

// objectName maps a district code to its resource name.  filepath.Base
// strips any path separators smuggled into the code.
func objectName(districtCode string) string {
	return filepath.Base(districtCode) + ".geojson"
}

// FileStore serves boundary documents from a local directory of
// <districtCode>.geojson files.
type FileStore struct {
	dir string
}

// NewFileStore builds a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Fetch reads the district's GeoJSON file from disk.
func (s *FileStore) Fetch(_ context.Context, districtCode string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, objectName(districtCode)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.BoundaryNotFound(districtCode)
		}
		return nil, errors.Wrap(err, errors.ErrCodeTransport, "failed to read boundary file")
	}
	return data, nil
}

// HTTPStore serves boundary documents from an upstream HTTP resource,
// GET <baseURL>/<districtCode>.geojson.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore builds an HTTPStore.  A nil client falls back to
// http.DefaultClient; pass a client with a Timeout to bound slow fetches.
func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStore{baseURL: baseURL, client: client}
}

// Fetch downloads the district's GeoJSON document.  A 404 maps to
// ErrCodeBoundaryNotFound; any other non-2xx status is a transport error.
func (s *HTTPStore) Fetch(ctx context.Context, districtCode string) ([]byte, error) {
	u := s.baseURL + "/" + url.PathEscape(objectName(districtCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTransport, "failed to build boundary request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Transport(err, "boundary fetch failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.BoundaryNotFound(districtCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.New(errors.ErrCodeTransport,
			fmt.Sprintf("boundary fetch returned status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Transport(err, "failed to read boundary response")
	}
	return data, nil
}

// MinIOStore serves boundary documents from an object-storage bucket, one
// object per district code.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore builds a MinIOStore over an existing client and bucket.
func NewMinIOStore(client *minio.Client, bucket string) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket}
}

// Fetch downloads the district's GeoJSON object.
func (s *MinIOStore) Fetch(ctx context.Context, districtCode string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(districtCode), minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Transport(err, "boundary object fetch failed")
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// GetObject is lazy; a missing key only surfaces on first read.
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, errors.BoundaryNotFound(districtCode)
		}
		return nil, errors.Transport(err, "failed to read boundary object")
	}
	return data, nil
}

// NewStore builds the Store selected by cfg.Boundary.Mode.  minioClient may
// be nil unless the mode is "minio".
func NewStore(cfg *config.Config, minioClient *minio.Client) (Store, error) {
	switch cfg.Boundary.Mode {
	case config.BoundaryModeFile:
		return NewFileStore(cfg.Boundary.Dir), nil
	case config.BoundaryModeHTTP:
		return NewHTTPStore(cfg.Boundary.BaseURL, &http.Client{Timeout: cfg.Boundary.Timeout}), nil
	case config.BoundaryModeMinIO:
		if minioClient == nil {
			return nil, errors.New(errors.ErrCodeInternal, "minio boundary store requires a client")
		}
		return NewMinIOStore(minioClient, cfg.MinIO.Bucket), nil
	default:
		return nil, errors.InvalidParam(fmt.Sprintf("unknown boundary mode %q", cfg.Boundary.Mode))
	}
}
