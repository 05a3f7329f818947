package transport

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"noviqueen/internal/store"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRespondErrorMapsStorageOutageTo503(t *testing.T) {
	rec := httptest.NewRecorder()

	err := fmt.Errorf("failed to list products: %w", store.ErrUnavailable)
	respondError(rec, zap.NewNop(), err, "failed to fetch products")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "storage unavailable")
}
