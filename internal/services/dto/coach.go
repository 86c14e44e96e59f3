package dto

import "fairway_backend/internal/models"

type SearchCoachesRequest struct {
	Location  string  `form:"location" validate:"omitempty,max=120"`
	Specialty string  `form:"specialty" validate:"omitempty,max=60"`
	PriceMin  float64 `form:"price_min" validate:"omitempty,gte=0"`
	PriceMax  float64 `form:"price_max" validate:"omitempty,gte=0"`
	SortBy    string  `form:"sort_by" validate:"omitempty,oneof=price experience rating"`
	SortDesc  bool    `form:"sort_desc"`
	Page      int     `form:"page" validate:"omitempty,gte=1"`
	PageSize  int     `form:"page_size" validate:"omitempty,gte=1,lte=100"`
}

type UpdateCoachProfileRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio             *string  `json:"bio,omitempty" validate:"omitempty,max=5000"`
	Location        *string  `json:"location,omitempty" validate:"omitempty,max=120"`
	PricePerHour    *float64 `json:"pricePerHour,omitempty" validate:"omitempty,gte=0"`
	YearsExperience *int     `json:"yearsExperience,omitempty" validate:"omitempty,gte=0,lte=80"`
	Specialties     []string `json:"specialties,omitempty" validate:"omitempty,dive,max=60"`
	Tools           []string `json:"tools,omitempty" validate:"omitempty,dive,max=60"`
	Certifications  []string `json:"certifications,omitempty" validate:"omitempty,dive,max=120"`
	Videos          []string `json:"videos,omitempty" validate:"omitempty,dive,url"`
}

type RejectCoachRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CoachListItem struct {
	ID              string   `json:"id"`
	UserID          string   `json:"userId"`
	Name            string   `json:"name"`
	Location        string   `json:"location,omitempty"`
	PricePerHour    float64  `json:"pricePerHour"`
	YearsExperience int      `json:"yearsExperience"`
	Specialties     []string `json:"specialties,omitempty"`
	AverageRating   float64  `json:"averageRating"`
	TotalReviews    int64    `json:"totalReviews"`
}

type CoachDetailResponse struct {
	CoachListItem
	Bio            string                `json:"bio,omitempty"`
	Tools          []string              `json:"tools,omitempty"`
	Certifications []string              `json:"certifications,omitempty"`
	Videos         []string              `json:"videos,omitempty"`
	ApprovalStatus models.ApprovalStatus `json:"approvalStatus,omitempty"`
}

type CoachListResponse struct {
	Coaches    []CoachListItem `json:"coaches"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"pages"`
}
