package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SupabaseStore speaks the Supabase Storage REST API directly; the
// surface is three plain object calls, so no SDK is involved.
type SupabaseStore struct {
	projectURL string
	apiKey     string
	bucket     string
	maxBytes   int64
	client     *http.Client
	logger     *zap.Logger
}

// NewSupabaseStore builds a store for one bucket of a Supabase project.
// projectURL is the project base, e.g. https://xyz.supabase.co.
func NewSupabaseStore(projectURL, apiKey, bucket string, maxBytes int64, logger *zap.Logger) *SupabaseStore {
	return &SupabaseStore{
		projectURL: strings.TrimSuffix(projectURL, "/"),
		apiKey:     apiKey,
		bucket:     bucket,
		maxBytes:   maxBytes,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (s *SupabaseStore) objectURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.projectURL, s.bucket, name)
}

func (s *SupabaseStore) publicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.projectURL, s.bucket, name)
}

// Upload stores the image in the bucket and returns its public URL.
func (s *SupabaseStore) Upload(ctx context.Context, data []byte, originalName, mimeType string) (string, error) {
	if err := validate(data, originalName, mimeType, s.maxBytes); err != nil {
		return "", err
	}

	name := objectName(originalName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(name), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", mimeType)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload rejected by storage: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	s.logger.Debug("Image uploaded to bucket",
		zap.String("bucket", s.bucket),
		zap.String("object", name),
	)

	return s.publicURL(name), nil
}

// Delete removes the object the URL points at. Missing objects are
// success; deletion is cleanup, not an invariant.
func (s *SupabaseStore) Delete(ctx context.Context, url string) error {
	if !s.IsManagedURL(url) {
		return nil
	}

	name := url[strings.LastIndex(url, "/")+1:]
	if name == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(name), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("delete rejected by storage: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return nil
}

// IsManagedURL reports whether the URL was issued by this bucket (or any
// Supabase storage endpoint, matching the original deployment).
func (s *SupabaseStore) IsManagedURL(url string) bool {
	if url == "" {
		return false
	}
	return strings.Contains(url, "supabase.co/storage") ||
		strings.HasPrefix(url, s.projectURL+"/storage/")
}
