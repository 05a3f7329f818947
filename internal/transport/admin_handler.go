package transport

import (
	"errors"
	"net/http"

	"noviqueen/internal/middleware"
	"noviqueen/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the admin password-change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// AdminHandler handles admin credential endpoints. Login is stateless;
// no session or token is issued.
type AdminHandler struct {
	admins service.AdminService
	logger *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admins service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admins: admins, logger: logger}
}

// RegisterRoutes registers all admin routes.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/change-password", h.ChangePassword)
	})
}

// Login checks the submitted credentials against the stored admin.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.handleValidationError(w, err)
		return
	}

	err := h.admins.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.logger.Warn("Failed admin login", zap.String("username", req.Username))
		middleware.RespondWithJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}
	if err != nil {
		respondError(w, h.logger, err, "failed to verify credentials")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
	})
}

// ChangePassword replaces the admin password after verifying the
// current one.
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.handleValidationError(w, err)
		return
	}

	err := h.admins.ChangePassword(r.Context(), service.DefaultAdminUsername, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, service.ErrInvalidCredentials) {
		middleware.RespondWithJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Current password is incorrect",
		})
		return
	}
	if err != nil {
		respondError(w, h.logger, err, "failed to change password")
		return
	}

	h.logger.Info("Admin password changed")
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (h *AdminHandler) handleValidationError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}
