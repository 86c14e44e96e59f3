package repositories

import (
	"errors"

	"fairway_backend/internal/models"

	"gorm.io/gorm"
)

var ErrStudentNotFound = errors.New("student profile not found")

type StudentRepository interface {
	Create(profile *models.StudentProfile) error
	FindByID(id string) (*models.StudentProfile, error)
	FindByUserID(userID string) (*models.StudentProfile, error)
	Update(profile *models.StudentProfile) error
}

type StudentRepositoryImpl struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &StudentRepositoryImpl{db: db}
}

func (r *StudentRepositoryImpl) Create(profile *models.StudentProfile) error {
	return r.db.Create(profile).Error
}

func (r *StudentRepositoryImpl) FindByID(id string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := r.db.Preload("User").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *StudentRepositoryImpl) FindByUserID(userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *StudentRepositoryImpl) Update(profile *models.StudentProfile) error {
	return r.db.Save(profile).Error
}
