package transport

import (
	"errors"
	"net/http"

	"noviqueen/internal/imagestore"
	"noviqueen/internal/middleware"
	"noviqueen/internal/store"

	"go.uber.org/zap"
)

// respondError maps the error taxonomy onto HTTP statuses. fallback is
// the client-facing message for unclassified errors, which are never
// echoed verbatim.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicate):
		middleware.RespondWithError(w, http.StatusConflict, "already exists")
	case errors.Is(err, imagestore.ErrUnsupportedMediaType):
		middleware.RespondWithError(w, http.StatusUnsupportedMediaType, imagestore.ErrUnsupportedMediaType.Error())
	case errors.Is(err, imagestore.ErrPayloadTooLarge):
		middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, imagestore.ErrPayloadTooLarge.Error())
	case errors.Is(err, store.ErrUnavailable):
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
