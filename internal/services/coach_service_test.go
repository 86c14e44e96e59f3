package services

import (
	"testing"

	"fairway_backend/internal/models"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoachFixture() (CoachService, *fakeCoachRepo, *fakeUserRepo, *fakeMailer) {
	coachRepo := newFakeCoachRepo()
	userRepo := newFakeUserRepo()
	mailer := &fakeMailer{}

	userRepo.add(&models.User{
		BaseModel: models.BaseModel{ID: "coach-user-1"},
		Email:     "pro@example.com",
		Role:      models.UserRoleCoach,
	})
	coachRepo.add(&models.CoachProfile{
		BaseModel:      models.BaseModel{ID: "profile-1"},
		UserID:         "coach-user-1",
		Name:           "Jordan Banks",
		PricePerHour:   80,
		ApprovalStatus: models.ApprovalStatusPending,
	})

	return NewCoachService(coachRepo, userRepo, mailer), coachRepo, userRepo, mailer
}

func TestApproveCoach(t *testing.T) {
	svc, coachRepo, _, mailer := newCoachFixture()

	require.NoError(t, svc.ApproveCoach("admin-1", "profile-1"))

	profile, err := coachRepo.FindByID("profile-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusApproved, profile.ApprovalStatus)
	require.NotNil(t, profile.ApprovedBy)
	assert.Equal(t, "admin-1", *profile.ApprovedBy)
	assert.Len(t, mailer.sent, 1)

	// Deciding twice is refused.
	err = svc.ApproveCoach("admin-1", "profile-1")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestRejectCoach(t *testing.T) {
	svc, coachRepo, _, mailer := newCoachFixture()

	require.NoError(t, svc.RejectCoach("admin-1", "profile-1", "Incomplete certifications"))

	profile, err := coachRepo.FindByID("profile-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusRejected, profile.ApprovalStatus)
	assert.Equal(t, "Incomplete certifications", profile.RejectionReason)
	assert.Len(t, mailer.sent, 1)
}

func TestApproveUnknownCoach(t *testing.T) {
	svc, _, _, _ := newCoachFixture()
	assert.ErrorIs(t, svc.ApproveCoach("admin-1", "missing"), apperrors.ErrCoachNotFound)
}

func TestPendingCoachHiddenFromDirectory(t *testing.T) {
	svc, _, _, _ := newCoachFixture()

	resp, err := svc.SearchCoaches(&dto.SearchCoachesRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Coaches)

	_, err = svc.GetCoach("profile-1")
	assert.ErrorIs(t, err, apperrors.ErrCoachNotFound)

	require.NoError(t, svc.ApproveCoach("admin-1", "profile-1"))

	resp, err = svc.SearchCoaches(&dto.SearchCoachesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Coaches, 1)
	assert.Equal(t, "Jordan Banks", resp.Coaches[0].Name)

	detail, err := svc.GetCoach("profile-1")
	require.NoError(t, err)
	// Approval status is not exposed on the public view.
	assert.Empty(t, detail.ApprovalStatus)
}

func TestUpdateMyProfile(t *testing.T) {
	svc, _, _, _ := newCoachFixture()

	bio := "PGA pro, 12 years teaching."
	price := 95.0
	resp, err := svc.UpdateMyProfile("coach-user-1", &dto.UpdateCoachProfileRequest{
		Bio:          &bio,
		PricePerHour: &price,
		Specialties:  []string{"short game", "putting"},
	})
	require.NoError(t, err)

	assert.Equal(t, bio, resp.Bio)
	assert.Equal(t, 95.0, resp.PricePerHour)
	assert.Equal(t, []string{"short game", "putting"}, resp.Specialties)
	// Untouched fields keep their values.
	assert.Equal(t, "Jordan Banks", resp.Name)
}

func TestUpdateRejectedProfileReentersQueue(t *testing.T) {
	svc, coachRepo, _, _ := newCoachFixture()
	require.NoError(t, svc.RejectCoach("admin-1", "profile-1", "Incomplete certifications"))

	bio := "Updated credentials attached."
	_, err := svc.UpdateMyProfile("coach-user-1", &dto.UpdateCoachProfileRequest{Bio: &bio})
	require.NoError(t, err)

	profile, err := coachRepo.FindByID("profile-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPending, profile.ApprovalStatus)
	assert.Empty(t, profile.RejectionReason)
}

func TestSearchCoachesPriceRangeValidation(t *testing.T) {
	svc, _, _, _ := newCoachFixture()

	_, err := svc.SearchCoaches(&dto.SearchCoachesRequest{PriceMin: 100, PriceMax: 50})
	require.Error(t, err)
}

func TestListPending(t *testing.T) {
	svc, _, _, _ := newCoachFixture()

	resp, err := svc.ListPending(1, 20)
	require.NoError(t, err)
	require.Len(t, resp.Coaches, 1)
	assert.Equal(t, "profile-1", resp.Coaches[0].ID)
}
