package dto

import (
	"github.com/coursebay/lms_backend/internal/core/domain"
)

// RegisterRequest is the payload to create a new user.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=learner instructor"`
}

// LoginRequest is the payload to authenticate a user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public view of a user profile.
type UserResponse struct {
	UserID            string  `json:"userID"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Role              string  `json:"role"`
	BankAccountNumber *string `json:"bankAccountNumber,omitempty"`
}

// ToUserResponse converts a domain.User to its public view.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:            u.UserID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              string(u.Role),
		BankAccountNumber: u.BankAccountNumber,
	}
}
