package repositories

import (
	"errors"
	"time"

	"fairway_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCoachNotFound = errors.New("coach profile not found")

// CoachFilter narrows the public coach listing. Zero values mean "no filter".
type CoachFilter struct {
	Location  string
	Specialty string
	PriceMin  float64
	PriceMax  float64
	SortBy    string // "price", "experience", "rating"
	SortDesc  bool
	Page      int
	PageSize  int
}

type CoachRepository interface {
	Create(profile *models.CoachProfile) error
	FindByID(id string) (*models.CoachProfile, error)
	FindByUserID(userID string) (*models.CoachProfile, error)
	Update(profile *models.CoachProfile) error
	FindApproved(filter CoachFilter) ([]models.CoachProfile, int64, error)
	FindByStatus(status models.ApprovalStatus, limit, offset int) ([]models.CoachProfile, int64, error)
	SetApproval(coachID string, status models.ApprovalStatus, adminID string, reason string, at time.Time) error
	UpdateRatingCache(coachID string, average float64, total int64) error
}

type CoachRepositoryImpl struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) CoachRepository {
	return &CoachRepositoryImpl{db: db}
}

func (r *CoachRepositoryImpl) Create(profile *models.CoachProfile) error {
	return r.db.Create(profile).Error
}

func (r *CoachRepositoryImpl) FindByID(id string) (*models.CoachProfile, error) {
	var profile models.CoachProfile
	err := r.db.Preload("User").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *CoachRepositoryImpl) FindByUserID(userID string) (*models.CoachProfile, error) {
	var profile models.CoachProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *CoachRepositoryImpl) Update(profile *models.CoachProfile) error {
	return r.db.Save(profile).Error
}

func (r *CoachRepositoryImpl) FindApproved(filter CoachFilter) ([]models.CoachProfile, int64, error) {
	query := r.db.Model(&models.CoachProfile{}).
		Where("approval_status = ?", models.ApprovalStatusApproved)

	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Specialty != "" {
		query = query.Where("? = ANY(specialties)", filter.Specialty)
	}
	if filter.PriceMin > 0 {
		query = query.Where("price_per_hour >= ?", filter.PriceMin)
	}
	if filter.PriceMax > 0 {
		query = query.Where("price_per_hour <= ?", filter.PriceMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch filter.SortBy {
	case "price":
		order = "price_per_hour"
	case "experience":
		order = "years_experience"
	case "rating":
		order = "average_rating"
	}
	if filter.SortBy != "" && filter.SortDesc {
		order += " DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var profiles []models.CoachProfile
	err := query.Order(order).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&profiles).Error
	return profiles, total, err
}

func (r *CoachRepositoryImpl) FindByStatus(status models.ApprovalStatus, limit, offset int) ([]models.CoachProfile, int64, error) {
	query := r.db.Model(&models.CoachProfile{}).Where("approval_status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.CoachProfile
	err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, total, err
}

func (r *CoachRepositoryImpl) SetApproval(coachID string, status models.ApprovalStatus, adminID string, reason string, at time.Time) error {
	updates := map[string]interface{}{
		"approval_status":  status,
		"approved_by":      adminID,
		"approved_at":      at,
		"rejection_reason": reason,
	}
	result := r.db.Model(&models.CoachProfile{}).Where("id = ?", coachID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCoachNotFound
	}
	return nil
}

func (r *CoachRepositoryImpl) UpdateRatingCache(coachID string, average float64, total int64) error {
	return r.db.Model(&models.CoachProfile{}).Where("id = ?", coachID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_reviews":  total,
		}).Error
}
