package service

import (
	"context"
	"errors"
	"fmt"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost matches the original deployment's hashes, so existing
	// credentials keep working after a backend switch.
	BcryptCost = 10

	// Bootstrap credential, created only when no row exists.
	DefaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminService checks and rotates the single dashboard credential.
// There is no session or token model: every admin call re-sends the
// password and is checked statelessly.
type AdminService interface {
	Login(ctx context.Context, username, password string) error
	ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error
	EnsureDefault(ctx context.Context) error
}

type adminService struct {
	admins store.AdminStore
	logger *zap.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(admins store.AdminStore, logger *zap.Logger) AdminService {
	return &adminService{admins: admins, logger: logger}
}

// Login verifies the username/password pair against the stored hash.
func (s *adminService) Login(ctx context.Context, username, password string) error {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to load credential: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ChangePassword rotates the credential after verifying the current one.
func (s *adminService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to load credential: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.admins.UpdatePassword(ctx, username, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Admin password rotated", zap.String("username", username))
	return nil
}

// EnsureDefault creates the bootstrap credential when none exists yet.
func (s *adminService) EnsureDefault(ctx context.Context) error {
	_, err := s.admins.GetByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check credential: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	if err := s.admins.Create(ctx, &domain.Admin{
		Username: DefaultAdminUsername,
		Password: string(hashed),
	}); err != nil {
		// A concurrent boot may have won the race; the credential exists
		// either way.
		if errors.Is(err, store.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to create default credential: %w", err)
	}

	s.logger.Info("Default admin credential created", zap.String("username", DefaultAdminUsername))
	return nil
}
