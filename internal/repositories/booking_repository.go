package repositories

import (
	"errors"
	"time"

	"fairway_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByID(id string) (*models.Booking, error)
	FindForUser(userID string) ([]models.Booking, error)
	FindActiveForCoachOnDate(coachUserID string, date time.Time) ([]models.Booking, error)
	UpdateStatus(bookingID string, status models.BookingStatus) error
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.
		Preload("Student.StudentProfile").
		Preload("Coach.CoachProfile").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) FindForUser(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Where("student_id = ? OR coach_id = ?", userID, userID).
		Preload("Student.StudentProfile").
		Preload("Coach.CoachProfile").
		Order("date DESC, start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

// FindActiveForCoachOnDate returns the coach's pending and confirmed bookings
// for a calendar day. Used by the overlap check on creation.
func (r *BookingRepositoryImpl) FindActiveForCoachOnDate(coachUserID string, date time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Where("coach_id = ? AND date = ? AND status IN ?",
			coachUserID,
			date.Format("2006-01-02"),
			[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) UpdateStatus(bookingID string, status models.BookingStatus) error {
	result := r.db.Model(&models.Booking{}).Where("id = ?", bookingID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
