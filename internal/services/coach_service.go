package services

import (
	"fmt"
	"math"
	"time"

	"fairway_backend/internal/email"
	"fairway_backend/internal/logger"
	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

type CoachService interface {
	SearchCoaches(req *dto.SearchCoachesRequest) (*dto.CoachListResponse, error)
	GetCoach(coachID string) (*dto.CoachDetailResponse, error)
	GetMyProfile(userID string) (*dto.CoachDetailResponse, error)
	UpdateMyProfile(userID string, req *dto.UpdateCoachProfileRequest) (*dto.CoachDetailResponse, error)
	ListPending(page, pageSize int) (*dto.CoachListResponse, error)
	ApproveCoach(adminID, coachID string) error
	RejectCoach(adminID, coachID, reason string) error
}

type coachService struct {
	coachRepo repositories.CoachRepository
	userRepo  repositories.UserRepository
	mailer    email.Provider
}

func NewCoachService(
	coachRepo repositories.CoachRepository,
	userRepo repositories.UserRepository,
	mailer email.Provider,
) CoachService {
	return &coachService{
		coachRepo: coachRepo,
		userRepo:  userRepo,
		mailer:    mailer,
	}
}

// SearchCoaches lists approved coaches only. Pending and rejected profiles
// never appear in the public directory.
func (s *coachService) SearchCoaches(req *dto.SearchCoachesRequest) (*dto.CoachListResponse, error) {
	if req.PriceMin > 0 && req.PriceMax > 0 && req.PriceMin > req.PriceMax {
		return nil, apperrors.NewBadRequestError("price_min must not exceed price_max")
	}

	filter := repositories.CoachFilter{
		Location:  req.Location,
		Specialty: req.Specialty,
		PriceMin:  req.PriceMin,
		PriceMax:  req.PriceMax,
		SortBy:    req.SortBy,
		SortDesc:  req.SortDesc,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	profiles, total, err := s.coachRepo.FindApproved(filter)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	items := make([]dto.CoachListItem, 0, len(profiles))
	for i := range profiles {
		items = append(items, toCoachListItem(&profiles[i]))
	}

	return &dto.CoachListResponse{
		Coaches:    items,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// GetCoach returns an approved coach's public profile by profile id.
func (s *coachService) GetCoach(coachID string) (*dto.CoachDetailResponse, error) {
	profile, err := s.coachRepo.FindByID(coachID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCoachNotFound) {
			return nil, apperrors.ErrCoachNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	if !profile.IsApproved() {
		return nil, apperrors.ErrCoachNotFound
	}
	return toCoachDetail(profile, false), nil
}

// GetMyProfile returns the caller's own coach profile, including the approval
// status hidden from the public view.
func (s *coachService) GetMyProfile(userID string) (*dto.CoachDetailResponse, error) {
	profile, err := s.coachRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCoachNotFound) {
			return nil, apperrors.ErrCoachNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return toCoachDetail(profile, true), nil
}

func (s *coachService) UpdateMyProfile(userID string, req *dto.UpdateCoachProfileRequest) (*dto.CoachDetailResponse, error) {
	profile, err := s.coachRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCoachNotFound) {
			return nil, apperrors.ErrCoachNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.PricePerHour != nil {
		profile.PricePerHour = *req.PricePerHour
	}
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}
	if req.Specialties != nil {
		profile.Specialties = req.Specialties
	}
	if req.Tools != nil {
		profile.Tools = req.Tools
	}
	if req.Certifications != nil {
		profile.Certifications = req.Certifications
	}
	if req.Videos != nil {
		profile.Videos = req.Videos
	}

	// A rejected coach re-enters the moderation queue after editing.
	if profile.ApprovalStatus == models.ApprovalStatusRejected {
		profile.ApprovalStatus = models.ApprovalStatusPending
		profile.RejectionReason = ""
	}

	if err := s.coachRepo.Update(profile); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return toCoachDetail(profile, true), nil
}

func (s *coachService) ListPending(page, pageSize int) (*dto.CoachListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	profiles, total, err := s.coachRepo.FindByStatus(models.ApprovalStatusPending, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	items := make([]dto.CoachListItem, 0, len(profiles))
	for i := range profiles {
		items = append(items, toCoachListItem(&profiles[i]))
	}

	return &dto.CoachListResponse{
		Coaches:    items,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (s *coachService) ApproveCoach(adminID, coachID string) error {
	profile, err := s.requirePending(coachID)
	if err != nil {
		return err
	}

	if err := s.coachRepo.SetApproval(coachID, models.ApprovalStatusApproved, adminID, "", time.Now()); err != nil {
		return apperrors.DatabaseError(err)
	}

	s.notify(profile.UserID, "Your coach profile is live",
		fmt.Sprintf("<p>Hi %s,</p><p>Your coach profile has been approved. Students can now find and book you.</p>", profile.Name))
	return nil
}

func (s *coachService) RejectCoach(adminID, coachID, reason string) error {
	profile, err := s.requirePending(coachID)
	if err != nil {
		return err
	}

	if err := s.coachRepo.SetApproval(coachID, models.ApprovalStatusRejected, adminID, reason, time.Now()); err != nil {
		return apperrors.DatabaseError(err)
	}

	body := fmt.Sprintf("<p>Hi %s,</p><p>Your coach profile was not approved.</p>", profile.Name)
	if reason != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", reason)
	}
	s.notify(profile.UserID, "About your coach profile", body)
	return nil
}

// requirePending rejects approval decisions against already-decided profiles.
func (s *coachService) requirePending(coachID string) (*models.CoachProfile, error) {
	profile, err := s.coachRepo.FindByID(coachID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCoachNotFound) {
			return nil, apperrors.ErrCoachNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	if profile.ApprovalStatus != models.ApprovalStatusPending {
		return nil, apperrors.ErrInvalidStatus("coach",
			"Coach profile is already "+string(profile.ApprovalStatus))
	}
	return profile, nil
}

func (s *coachService) notify(userID, subject, body string) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		logger.WithError(err).Warn("notification skipped, user lookup failed", "user_id", userID)
		return
	}
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		logger.WithError(err).Warn("notification email failed", "user_id", userID)
	}
}

func toCoachListItem(p *models.CoachProfile) dto.CoachListItem {
	return dto.CoachListItem{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Location:        p.Location,
		PricePerHour:    p.PricePerHour,
		YearsExperience: p.YearsExperience,
		Specialties:     p.Specialties,
		AverageRating:   p.AverageRating,
		TotalReviews:    p.TotalReviews,
	}
}

func toCoachDetail(p *models.CoachProfile, includeApproval bool) *dto.CoachDetailResponse {
	detail := &dto.CoachDetailResponse{
		CoachListItem:  toCoachListItem(p),
		Bio:            p.Bio,
		Tools:          p.Tools,
		Certifications: p.Certifications,
		Videos:         p.Videos,
	}
	if includeApproval {
		detail.ApprovalStatus = p.ApprovalStatus
	}
	return detail
}
