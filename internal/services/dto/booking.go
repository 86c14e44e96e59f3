package dto

import (
	"time"

	"fairway_backend/internal/models"
)

type CreateBookingRequest struct {
	CoachID         string  `json:"coachId" binding:"required" validate:"required,uuid"`
	Date            string  `json:"date" binding:"required" validate:"required,datetime=2006-01-02"`
	StartTime       string  `json:"time" binding:"required" validate:"required,lesson_time"`
	DurationMinutes int     `json:"duration" binding:"required" validate:"required,lesson_duration"`
	LessonType      string  `json:"lessonType" validate:"omitempty,max=40"`
	Location        string  `json:"location" validate:"omitempty,max=200"`
}

type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required" validate:"required,oneof=pending confirmed completed cancelled"`
}

type BookingResponse struct {
	ID              string               `json:"id"`
	StudentID       string               `json:"studentId"`
	StudentName     string               `json:"studentName,omitempty"`
	CoachID         string               `json:"coachId"`
	CoachName       string               `json:"coachName,omitempty"`
	Date            string               `json:"date"`
	StartTime       string               `json:"time"`
	DurationMinutes int                  `json:"duration"`
	LessonType      string               `json:"lessonType,omitempty"`
	Location        string               `json:"location,omitempty"`
	Status          models.BookingStatus `json:"status"`
	TotalAmount     float64              `json:"totalAmount"`
	CreatedAt       time.Time            `json:"createdAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}
