package models

import (
	"time"

	"github.com/lib/pq"
)

type CoachProfile struct {
	BaseModel
	UserID          string  `gorm:"not null;uniqueIndex"`
	Name            string  `gorm:"not null"`
	Bio             string  `gorm:"type:text"`
	Location        string  `gorm:"index"`
	PricePerHour    float64 `gorm:"not null;check:price_per_hour >= 0"`
	YearsExperience int

	ApprovalStatus  ApprovalStatus `gorm:"type:varchar(20);default:'pending';index"`
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason string

	Specialties    pq.StringArray `gorm:"type:text[]"`
	Tools          pq.StringArray `gorm:"type:text[]"`
	Certifications pq.StringArray `gorm:"type:text[]"`
	Videos         pq.StringArray `gorm:"type:text[]"`

	// Denormalized rating cache, refreshed on review creation.
	AverageRating float64 `gorm:"default:0"`
	TotalReviews  int64   `gorm:"default:0"`

	// Relations
	User *User `gorm:"foreignKey:UserID"`
}

// IsApproved reports whether the profile is publicly listed and bookable.
func (p *CoachProfile) IsApproved() bool {
	return p.ApprovalStatus == ApprovalStatusApproved
}
