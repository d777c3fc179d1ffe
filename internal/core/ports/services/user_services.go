package services

import (
	"context"

	"github.com/coursebay/lms_backend/internal/core/domain"
	"github.com/coursebay/lms_backend/internal/dto"
)

// UserSvcFacade manages user profiles and credentials.
type UserSvcFacade interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies email+password and returns the user.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID fetches a user profile.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsersByRole lists users holding the given role.
	ListUsersByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}
