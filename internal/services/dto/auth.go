package dto

import "fairway_backend/internal/models"

type RegisterRequest struct {
	Email    string          `json:"email" binding:"required" validate:"required,email"`
	Password string          `json:"password" binding:"required" validate:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"required" validate:"required,oneof=student coach"`
	Name     string          `json:"name" binding:"required" validate:"required,min=2,max=100"`

	// Student-only fields
	Phone      string `json:"phone,omitempty" validate:"omitempty,max=30"`
	SkillLevel string `json:"skillLevel,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`

	// Coach-only fields
	Location     string  `json:"location,omitempty" validate:"omitempty,max=120"`
	PricePerHour float64 `json:"pricePerHour,omitempty" validate:"omitempty,gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" validate:"required"`
}

type UserResponse struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
	Name  string          `json:"name"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}
