package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStore keeps images in an uploads directory and issues URLs under
// the /uploads/ path, which the HTTP server serves statically.
type LocalStore struct {
	dir      string
	baseURL  string
	maxBytes int64
	logger   *zap.Logger
}

// NewLocalStore prepares an image store rooted at dir. baseURL (for
// example "http://localhost:8080") prefixes issued URLs; leave it empty
// for host-relative /uploads/ URLs.
func NewLocalStore(dir, baseURL string, maxBytes int64, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &LocalStore{
		dir:      dir,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

// Dir exposes the uploads directory for static file serving.
func (s *LocalStore) Dir() string { return s.dir }

// Upload writes the image to disk and returns its URL.
func (s *LocalStore) Upload(ctx context.Context, data []byte, originalName, mimeType string) (string, error) {
	if err := validate(data, originalName, mimeType, s.maxBytes); err != nil {
		return "", err
	}

	name := objectName(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Debug("Image stored locally", zap.String("object", name))
	return s.baseURL + "/uploads/" + name, nil
}

// Delete removes the object the URL points at. A missing file is success.
func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if !s.IsManagedURL(url) {
		return nil
	}

	name := url[strings.LastIndex(url, "/")+1:]
	if name == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// IsManagedURL reports whether the URL points into the uploads dir.
func (s *LocalStore) IsManagedURL(url string) bool {
	return strings.HasPrefix(url, "/uploads/") ||
		(s.baseURL != "" && strings.HasPrefix(url, s.baseURL+"/uploads/"))
}
