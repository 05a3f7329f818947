package imagestore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBucket imitates the Supabase Storage object endpoints.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	apiKey  string
}

func newFakeBucket(apiKey string) *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}, apiKey: apiKey}
}

func (b *fakeBucket) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.apiKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/storage/v1/object/product-images/")

		b.mu.Lock()
		defer b.mu.Unlock()

		switch r.Method {
		case http.MethodPost:
			data, _ := io.ReadAll(r.Body)
			b.objects[name] = data
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			if _, ok := b.objects[name]; !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			delete(b.objects, name)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (b *fakeBucket) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

func TestSupabaseUploadAndDelete(t *testing.T) {
	bucket := newFakeBucket("test-key")
	srv := httptest.NewServer(bucket.handler())
	defer srv.Close()

	s := NewSupabaseStore(srv.URL, "test-key", "product-images", 0, zap.NewNop())
	ctx := context.Background()

	url, err := s.Upload(ctx, []byte("fake-jpeg-bytes"), "bag.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, srv.URL+"/storage/v1/object/public/product-images/"))
	assert.Equal(t, 1, bucket.len())

	require.NoError(t, s.Delete(ctx, url))
	assert.Equal(t, 0, bucket.len())

	// Second delete hits a 404, which is success.
	assert.NoError(t, s.Delete(ctx, url))
}

func TestSupabaseUploadValidatesBeforeAnyRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	s := NewSupabaseStore(srv.URL, "test-key", "product-images", 16, zap.NewNop())
	ctx := context.Background()

	_, err := s.Upload(ctx, []byte("data"), "notes.txt", "text/plain")
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)

	_, err = s.Upload(ctx, make([]byte, 17), "bag.png", "image/png")
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	assert.Zero(t, requests)
}

func TestSupabaseUploadSurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bucket not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewSupabaseStore(srv.URL, "test-key", "product-images", 0, zap.NewNop())

	_, err := s.Upload(context.Background(), []byte("fake"), "bag.png", "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket not found")
}

func TestSupabaseIsManagedURL(t *testing.T) {
	s := NewSupabaseStore("https://xyz.supabase.co", "key", "product-images", 0, zap.NewNop())

	assert.True(t, s.IsManagedURL("https://xyz.supabase.co/storage/v1/object/public/product-images/123-abc.png"))
	assert.True(t, s.IsManagedURL("https://other.supabase.co/storage/v1/object/public/b/o.png"))
	assert.False(t, s.IsManagedURL("https://cdn.example.com/images/bag.jpg"))
	assert.False(t, s.IsManagedURL(""))
}

func TestSupabaseDeleteSkipsUnmanagedURLs(t *testing.T) {
	// No server at all: an unmanaged URL must short-circuit.
	s := NewSupabaseStore("https://xyz.supabase.co", "key", "product-images", 0, zap.NewNop())

	assert.NoError(t, s.Delete(context.Background(), "https://cdn.example.com/images/bag.jpg"))
}
