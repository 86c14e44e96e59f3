package models

import (
	"fmt"
	"time"
)

// AllowedDurations lists the bookable lesson lengths in minutes.
var AllowedDurations = []int{30, 60, 90}

type Booking struct {
	BaseModel
	StudentID       string    `gorm:"not null;index"` // User id
	CoachID         string    `gorm:"not null;index"` // User id
	Date            time.Time `gorm:"type:date;not null;index"`
	StartTime       string    `gorm:"type:varchar(5);not null"` // "15:04"
	DurationMinutes int       `gorm:"not null"`
	LessonType      string    `gorm:"type:varchar(40)"`
	Location        string
	Status          BookingStatus `gorm:"type:varchar(20);default:'pending';index"`
	TotalAmount     float64       `gorm:"not null"`

	// Relations
	Student *User `gorm:"foreignKey:StudentID"`
	Coach   *User `gorm:"foreignKey:CoachID"`
}

// bookingTransitions is the closed status graph. completed and cancelled are
// terminal. Who may drive each edge is enforced in the service layer.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransition reports whether from→to is a legal status change.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidBookingStatus reports whether s is one of the known statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// StartsAt combines Date and StartTime into a single instant.
func (b *Booking) StartsAt() (time.Time, error) {
	t, err := time.Parse("15:04", b.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", b.StartTime, err)
	}
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, b.Date.Location()), nil
}

// EndsAt is StartsAt plus the lesson duration.
func (b *Booking) EndsAt() (time.Time, error) {
	start, err := b.StartsAt()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(b.DurationMinutes) * time.Minute), nil
}

// Overlaps reports whether two bookings occupy intersecting intervals.
// Bookings with malformed times never overlap.
func (b *Booking) Overlaps(other *Booking) bool {
	aStart, err := b.StartsAt()
	if err != nil {
		return false
	}
	aEnd, _ := b.EndsAt()

	bStart, err := other.StartsAt()
	if err != nil {
		return false
	}
	bEnd, _ := other.EndsAt()

	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
