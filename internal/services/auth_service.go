package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"fairway_backend/internal/auth"
	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(refreshToken string) (*dto.AuthResponse, error)
	Logout(userID string) error
}

type authService struct {
	userRepo    repositories.UserRepository
	coachRepo   repositories.CoachRepository
	studentRepo repositories.StudentRepository
}

func NewAuthService(
	userRepo repositories.UserRepository,
	coachRepo repositories.CoachRepository,
	studentRepo repositories.StudentRepository,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		coachRepo:   coachRepo,
		studentRepo: studentRepo,
	}
}

// Register creates the user plus the role-matching profile. Coach profiles
// start as pending and stay off the public directory until an admin approves
// them.
func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if req.Role != models.UserRoleStudent && req.Role != models.UserRoleCoach {
		return nil, apperrors.ErrInvalidOperation("auth", "Role must be student or coach")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         req.Role,
		Status:       models.UserStatusActive,
		AuthProvider: "local",
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.DatabaseError(err)
	}

	if err := s.createProfile(user, req); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return s.issueTokens(user, req.Name)
}

func (s *authService) createProfile(user *models.User, req *dto.RegisterRequest) error {
	switch user.Role {
	case models.UserRoleCoach:
		return s.coachRepo.Create(&models.CoachProfile{
			UserID:         user.ID,
			Name:           req.Name,
			Location:       req.Location,
			PricePerHour:   req.PricePerHour,
			ApprovalStatus: models.ApprovalStatusPending,
		})
	default:
		return s.studentRepo.Create(&models.StudentProfile{
			UserID:     user.ID,
			Name:       req.Name,
			Phone:      req.Phone,
			SkillLevel: req.SkillLevel,
		})
	}
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewForbiddenError("Your account has been suspended")
	}

	return s.issueTokens(user, displayNameOf(user))
}

func (s *authService) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	token, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewForbiddenError("Your account has been suspended")
	}

	// Rotation: the presented token is single-use.
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return s.issueTokens(user, displayNameOf(user))
}

func (s *authService) Logout(userID string) error {
	if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *authService) issueTokens(user *models.User, name string) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := generateRandomToken()
	if err := s.userRepo.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
			Name:  name,
		},
	}, nil
}

// displayNameOf picks the profile name for the user's role, falling back to
// the email when no profile is loaded.
func displayNameOf(user *models.User) string {
	if user.CoachProfile != nil && user.CoachProfile.Name != "" {
		return user.CoachProfile.Name
	}
	if user.StudentProfile != nil && user.StudentProfile.Name != "" {
		return user.StudentProfile.Name
	}
	return user.Email
}

func generateRandomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
