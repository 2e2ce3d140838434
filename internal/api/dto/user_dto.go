package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// UserProfile is the projection returned for account reads. It never
// carries the password hash.
type UserProfile struct {
	ID              int64       `json:"id"`
	Username        string      `json:"username"`
	FullName        string      `json:"fullName"`
	Department      string      `json:"department"`
	ComputerName    string      `json:"computerName"`
	Role            domain.Role `json:"role"`
	CreatedAt       time.Time   `json:"createdAt"`
	ProfileComplete bool        `json:"profileComplete"`
}

// NewUserProfile builds the projection from a domain user.
func NewUserProfile(user *domain.User) UserProfile {
	return UserProfile{
		ID:              user.ID,
		Username:        user.Username,
		FullName:        user.FullName,
		Department:      user.Department,
		ComputerName:    user.ComputerName,
		Role:            user.Role,
		CreatedAt:       user.CreatedAt,
		ProfileComplete: user.ProfileComplete(),
	}
}

// UpdateProfileRequest carries a partial profile edit. Omitted or null
// fields leave the stored value unchanged.
type UpdateProfileRequest struct {
	FullName     *string `json:"fullName"`
	Department   *string `json:"department"`
	ComputerName *string `json:"computerName"`
}

// CreateUserRequest is the explicit account creation payload (admin).
type CreateUserRequest struct {
	Username     string      `json:"username"`
	Password     string      `json:"password"`
	FullName     string      `json:"fullName"`
	Department   string      `json:"department"`
	ComputerName string      `json:"computerName"`
	Role         domain.Role `json:"role"`
}
