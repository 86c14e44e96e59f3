package repositories

import (
	"errors"

	"fairway_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this booking")
)

// RatingStats is the aggregate shown on a coach's public profile.
type RatingStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id string) (*models.Review, error)
	FindByBookingID(bookingID string) (*models.Review, error)
	FindByCoach(coachUserID string, limit, offset int) ([]models.Review, int64, error)
	GetCoachRatingStats(coachUserID string) (*RatingStats, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	var existing models.Review
	err := r.db.Where("booking_id = ?", review.BookingID).First(&existing).Error
	if err == nil {
		return ErrReviewAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	// A concurrent duplicate can slip past the check; the unique index on
	// booking_id is the real guard.
	if err := r.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Student.StudentProfile").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByBookingID(bookingID string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "booking_id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByCoach(coachUserID string, limit, offset int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("coach_id = ?", coachUserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("Student.StudentProfile").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) GetCoachRatingStats(coachUserID string) (*RatingStats, error) {
	var stats RatingStats
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_reviews").
		Where("coach_id = ?", coachUserID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
