package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalPhotoStore keeps photos on the local filesystem and serves them under baseURL
type LocalPhotoStore struct {
	basePath string
	baseURL  string
}

// NewLocalPhotoStore creates the photo directory if needed. baseURL is the
// path prefix the router serves basePath under, e.g. "/photos/".
func NewLocalPhotoStore(basePath, baseURL string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalPhotoStore{basePath: basePath, baseURL: baseURL}, nil
}

// Dir returns the directory photos are written to
func (s *LocalPhotoStore) Dir() string {
	return s.basePath
}

// Upload writes the photo to basePath/<id> and returns its URL
func (s *LocalPhotoStore) Upload(ctx context.Context, id string, data io.Reader) (string, error) {
	name := filepath.Base(id)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid photo id %q", id)
	}
	fullPath := filepath.Join(s.basePath, name)

	if err := writeFile(fullPath, data); err != nil {
		return "", err
	}
	return s.baseURL + name, nil
}

// Delete removes the photo referenced by url. Missing files are not an error.
func (s *LocalPhotoStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.baseURL) {
		return fmt.Errorf("photo url %q is not served by this store", url)
	}
	fullPath := filepath.Join(s.basePath, path.Base(url))

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

// LocalFileArchive writes exported files into a directory
type LocalFileArchive struct {
	basePath string
}

// NewLocalFileArchive creates the archive directory if needed
func NewLocalFileArchive(basePath string) (*LocalFileArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalFileArchive{basePath: basePath}, nil
}

// UploadFile writes data to basePath/name, replacing an existing file
func (a *LocalFileArchive) UploadFile(ctx context.Context, name string, data io.Reader) error {
	return writeFile(filepath.Join(a.basePath, filepath.Base(name)), data)
}

func writeFile(fullPath string, data io.Reader) error {
	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath) // Cleanup on error
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
