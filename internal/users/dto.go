package users

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
)

// UserDTO is the API shape of an account. The password hash never leaves the
// persistence layer.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	FullName  string         `json:"fullName"`
	Role      enums.UserRole `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

// FromModel maps a stored user to its API shape.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// CreateUserDTO carries the fields needed to persist a new account.
type CreateUserDTO struct {
	Email        string
	FullName     string
	PasswordHash string
	Role         enums.UserRole
}

// ToModel builds the persistence row with a normalized email.
func (d CreateUserDTO) ToModel() *models.User {
	role := d.Role
	if !role.IsValid() {
		role = enums.UserRoleCustomer
	}
	return &models.User{
		Email:        NormalizeEmail(d.Email),
		FullName:     strings.TrimSpace(d.FullName),
		PasswordHash: d.PasswordHash,
		Role:         role,
	}
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
