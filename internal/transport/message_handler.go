package transport

import (
	"net/http"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/middleware"
	"noviqueen/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContactRequest is the payload of a submitted contact message.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// MessageHandler handles contact message endpoints.
type MessageHandler struct {
	messages store.MessageStore
	logger   *zap.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messages store.MessageStore, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

// RegisterRoutes registers all contact message routes.
func (h *MessageHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/messages", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.MarkRead)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns all messages, newest first.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.GetAll(r.Context())
	if err != nil {
		respondError(w, h.logger, err, "failed to fetch messages")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, messages)
}

// Get returns one message by id.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	message, err := h.messages.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err, "failed to fetch message")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, message)
}

// Create stores a visitor contact message as unread.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := &domain.Message{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    domain.MessageStatusUnread,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.messages.Create(r.Context(), message); err != nil {
		respondError(w, h.logger, err, "failed to store message")
		return
	}

	h.logger.Info("Contact message received",
		zap.Int64("message_id", message.ID),
		zap.String("email", message.Email),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Message sent successfully",
	})
}

// MarkRead flips a message to read status.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.messages.UpdateStatus(r.Context(), id, domain.MessageStatusRead); err != nil {
		respondError(w, h.logger, err, "failed to update message status")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Delete removes a message.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.messages.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, "failed to delete message")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message deleted successfully",
	})
}
