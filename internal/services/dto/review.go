package dto

import "time"

type CreateReviewRequest struct {
	BookingID string `json:"bookingId" binding:"required" validate:"required,uuid"`
	Rating    int    `json:"rating" binding:"required" validate:"required,gte=1,lte=5"`
	Content   string `json:"content" validate:"omitempty,max=5000"`
}

type ReviewResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"bookingId"`
	CoachID     string    `json:"coachId"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName,omitempty"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	Total         int64            `json:"total"`
	AverageRating float64          `json:"averageRating"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"pages"`
}
