package transport

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/middleware"
	"noviqueen/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SubscribeRequest is the newsletter signup payload.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscriberHandler handles newsletter subscriber endpoints.
type SubscriberHandler struct {
	subscribers store.SubscriberStore
	logger      *zap.Logger
}

// NewSubscriberHandler creates a new SubscriberHandler.
func NewSubscriberHandler(subscribers store.SubscriberStore, logger *zap.Logger) *SubscriberHandler {
	return &SubscriberHandler{subscribers: subscribers, logger: logger}
}

// RegisterRoutes registers all subscriber routes.
func (h *SubscriberHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/subscribers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns all subscribers, newest first.
func (h *SubscriberHandler) List(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.subscribers.GetAll(r.Context())
	if err != nil {
		respondError(w, h.logger, err, "failed to fetch subscribers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, subscribers)
}

// Create signs an email up for the newsletter. A repeat signup is
// rejected with a conflict.
func (h *SubscriberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subscriber := &domain.Subscriber{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Status:       domain.SubscriberStatusActive,
		SubscribedAt: time.Now().UTC(),
	}
	err := h.subscribers.Create(r.Context(), subscriber)
	if errors.Is(err, store.ErrDuplicate) {
		middleware.RespondWithError(w, http.StatusConflict, "email already subscribed")
		return
	}
	if err != nil {
		respondError(w, h.logger, err, "failed to store subscriber")
		return
	}

	h.logger.Info("Newsletter signup", zap.Int64("subscriber_id", subscriber.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Subscribed successfully",
	})
}

// Delete removes a subscriber.
func (h *SubscriberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.subscribers.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, "failed to delete subscriber")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Subscriber removed successfully",
	})
}
