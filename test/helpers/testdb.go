package helpers

import (
	"testing"
	"time"

	"fairway_backend/internal/models"
	"fairway_backend/internal/services/dto"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterAndLogin registers a user through the API and returns the access
// token plus the user's id.
func RegisterAndLogin(t *testing.T, ts *TestServer, email, name string, role models.UserRole) (token, userID string) {
	t.Helper()

	req := dto.RegisterRequest{
		Email:    email,
		Password: "test-password-123",
		Role:     role,
		Name:     name,
	}
	if role == models.UserRoleCoach {
		req.Location = "Austin"
		req.PricePerHour = 80
	}

	var resp dto.AuthResponse
	httpResp := ts.DoJSON(t, "POST", "/api/v1/auth/register", "", req, &resp)
	if httpResp.StatusCode != 201 {
		t.Fatalf("register %s returned status %d", email, httpResp.StatusCode)
	}
	return resp.AccessToken, resp.User.ID
}

// CreateAdmin inserts an admin directly and logs in through the API.
func CreateAdmin(t *testing.T, ts *TestServer, email string) (token, userID string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-password-123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}
	admin := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		AuthProvider: "local",
	}
	if err := ts.DB.Create(admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	var resp dto.AuthResponse
	httpResp := ts.DoJSON(t, "POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: "admin-password-123",
	}, &resp)
	if httpResp.StatusCode != 200 {
		t.Fatalf("admin login returned status %d", httpResp.StatusCode)
	}
	return resp.AccessToken, admin.ID
}

// ApproveCoachDirect flips a coach profile to approved without going through
// the admin API. For tests that only need a bookable coach.
func ApproveCoachDirect(t *testing.T, db *gorm.DB, coachUserID string) {
	t.Helper()

	now := time.Now()
	err := db.Model(&models.CoachProfile{}).
		Where("user_id = ?", coachUserID).
		Updates(map[string]interface{}{
			"approval_status": models.ApprovalStatusApproved,
			"approved_at":     now,
		}).Error
	if err != nil {
		t.Fatalf("failed to approve coach %s: %v", coachUserID, err)
	}
}

// CoachProfileID looks up the profile id for a coach user.
func CoachProfileID(t *testing.T, db *gorm.DB, coachUserID string) string {
	t.Helper()

	var profile models.CoachProfile
	if err := db.First(&profile, "user_id = ?", coachUserID).Error; err != nil {
		t.Fatalf("failed to load coach profile for %s: %v", coachUserID, err)
	}
	return profile.ID
}
