// Package imagestore persists binary product images and issues public
// URLs for them. Two backends exist: a local uploads directory served by
// the API, and a hosted Supabase Storage bucket. Deletion is best-effort
// cleanup: removing an object that is already gone is a success.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxUploadBytes is the upload ceiling when none is configured.
const DefaultMaxUploadBytes = 5 << 20 // 5 MiB

var (
	// ErrUnsupportedMediaType is returned for non-image payloads.
	ErrUnsupportedMediaType = errors.New("only image files are allowed")

	// ErrPayloadTooLarge is returned when the payload exceeds the
	// configured size ceiling.
	ErrPayloadTooLarge = errors.New("image exceeds the maximum upload size")
)

// Store is the image persistence contract.
type Store interface {
	// Upload stores the image bytes under a fresh object name and
	// returns its publicly resolvable URL.
	Upload(ctx context.Context, data []byte, originalName, mimeType string) (string, error)

	// Delete removes the object a previously issued URL points at.
	// A missing object is not an error.
	Delete(ctx context.Context, url string) error

	// IsManagedURL reports whether this store issued the URL, as
	// opposed to an externally supplied image URL.
	IsManagedURL(url string) bool
}

// allowedTypes maps accepted MIME subtypes and file extensions.
var allowedTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// validate enforces the MIME allow-list and the size ceiling shared by
// every backend.
func validate(data []byte, originalName, mimeType string, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if int64(len(data)) > maxBytes {
		return ErrPayloadTooLarge
	}

	subtype, ok := strings.CutPrefix(strings.ToLower(mimeType), "image/")
	if !ok || !allowedTypes[subtype] {
		return ErrUnsupportedMediaType
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(originalName)), ".")
	if !allowedTypes[ext] {
		return ErrUnsupportedMediaType
	}

	return nil
}

// objectName builds a fresh object name. The random token makes
// concurrent uploads collision-free regardless of timestamp granularity
// or the original filename.
func objectName(originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
