package dto

import "time"

// Auth Request DTOs

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest contains the editable profile fields; nil fields are
// left untouched
type UpdateProfileRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	PreferredCurrency *string `json:"preferredCurrency,omitempty" validate:"omitempty,len=3"`
	IsDarkMode        *bool   `json:"isDarkMode,omitempty"`
}

// ChangePasswordRequest contains a password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// Auth Response DTOs

// TokenResponse contains the issued access token
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserProfileResponse represents the authenticated user's profile
type UserProfileResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	PreferredCurrency string     `json:"preferredCurrency"`
	IsDarkMode        bool       `json:"isDarkMode"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// LoginResponse bundles the token with the signed-in user's profile
type LoginResponse struct {
	Token TokenResponse       `json:"token"`
	User  UserProfileResponse `json:"user"`
}
