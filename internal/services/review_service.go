package services

import (
	"math"
	"strings"

	"fairway_backend/internal/logger"
	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

type ReviewService interface {
	CreateReview(studentID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListCoachReviews(coachUserID string, page, pageSize int) (*dto.ReviewListResponse, error)
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	bookingRepo repositories.BookingRepository
	coachRepo   repositories.CoachRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	bookingRepo repositories.BookingRepository,
	coachRepo repositories.CoachRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		coachRepo:   coachRepo,
	}
}

// CreateReview lets the student of a completed booking rate the coach once.
// The coach's denormalized rating cache is refreshed after the insert.
func (s *reviewService) CreateReview(studentID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewBadRequestError("Rating must be between 1 and 5")
	}

	booking, err := s.bookingRepo.FindByID(req.BookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	if booking.StudentID != studentID {
		return nil, apperrors.NewForbiddenError("Only the student of this booking can review it")
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.ErrInvalidStatus("review", "Only completed lessons can be reviewed")
	}

	review := &models.Review{
		BookingID: booking.ID,
		CoachID:   booking.CoachID,
		StudentID: studentID,
		Rating:    req.Rating,
		Content:   strings.TrimSpace(req.Content),
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if apperrors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.DatabaseError(err)
	}

	s.refreshRatingCache(booking.CoachID)

	return toReviewResponse(review), nil
}

// ListCoachReviews returns a coach's reviews by the coach's user id, newest
// first, with the aggregate rating alongside.
func (s *reviewService) ListCoachReviews(coachUserID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	reviews, total, err := s.reviewRepo.FindByCoach(coachUserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	stats, err := s.reviewRepo.GetCoachRatingStats(coachUserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, *toReviewResponse(&reviews[i]))
	}

	return &dto.ReviewListResponse{
		Reviews:       out,
		Total:         total,
		AverageRating: stats.AverageRating,
		Page:          page,
		TotalPages:    int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// refreshRatingCache recomputes the coach's aggregate. Failures are logged,
// not surfaced: the review itself is already committed.
func (s *reviewService) refreshRatingCache(coachUserID string) {
	stats, err := s.reviewRepo.GetCoachRatingStats(coachUserID)
	if err != nil {
		logger.WithError(err).Warn("rating stats recompute failed", "coach_user_id", coachUserID)
		return
	}
	profile, err := s.coachRepo.FindByUserID(coachUserID)
	if err != nil {
		logger.WithError(err).Warn("rating cache refresh skipped, profile lookup failed", "coach_user_id", coachUserID)
		return
	}
	if err := s.coachRepo.UpdateRatingCache(profile.ID, stats.AverageRating, stats.TotalReviews); err != nil {
		logger.WithError(err).Warn("rating cache update failed", "coach_user_id", coachUserID)
	}
}

func toReviewResponse(r *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		CoachID:   r.CoachID,
		StudentID: r.StudentID,
		Rating:    r.Rating,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
	if r.Student != nil {
		if r.Student.StudentProfile != nil {
			resp.StudentName = r.Student.StudentProfile.Name
		} else {
			resp.StudentName = r.Student.Email
		}
	}
	return resp
}
