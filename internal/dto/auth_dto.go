package dto

import "github.com/jobtrackr/jobtrackr/internal/model"

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
}

// SessionDTO is the auth payload: the cached profile plus the bearer token.
// Token is empty while email confirmation is pending.
type SessionDTO struct {
	User  *model.UserProfile `json:"user"`
	Token string             `json:"token,omitempty"`
}
