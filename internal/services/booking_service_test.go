package services

import (
	"testing"
	"time"

	"fairway_backend/internal/models"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture(t *testing.T) (*bookingService, *fakeBookingRepo, *fakeCoachRepo) {
	t.Helper()

	bookingRepo := newFakeBookingRepo()
	coachRepo := newFakeCoachRepo()
	coachRepo.add(&models.CoachProfile{
		BaseModel:      models.BaseModel{ID: "profile-1"},
		UserID:         "coach-1",
		Name:           "Jordan Banks",
		PricePerHour:   80,
		ApprovalStatus: models.ApprovalStatusApproved,
	})

	svc := NewBookingService(bookingRepo, coachRepo, &fakeMailer{}).(*bookingService)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, bookingRepo, coachRepo
}

func TestCreateBooking(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	resp, err := svc.CreateBooking("student-1", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 90,
		LessonType:      "on-course",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, resp.Status)
	assert.Equal(t, "student-1", resp.StudentID)
	assert.Equal(t, "coach-1", resp.CoachID)
	// 90 minutes at 80/hour.
	assert.InDelta(t, 120.0, resp.TotalAmount, 0.001)
}

func TestCreateBookingRejectsPastSlot(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.CreateBooking("student-1", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-02-28",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestCreateBookingRejectsBadDuration(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.CreateBooking("student-1", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 45,
	})
	require.Error(t, err)
}

func TestCreateBookingRejectsUnapprovedCoach(t *testing.T) {
	svc, _, coachRepo := newBookingFixture(t)
	coachRepo.add(&models.CoachProfile{
		BaseModel:      models.BaseModel{ID: "profile-2"},
		UserID:         "coach-2",
		PricePerHour:   50,
		ApprovalStatus: models.ApprovalStatusPending,
	})

	_, err := svc.CreateBooking("student-1", &dto.CreateBookingRequest{
		CoachID:         "coach-2",
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, apperrors.ErrCoachNotApproved)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.CreateBooking("student-1", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	// Second booking starts inside the first one's window.
	_, err = svc.CreateBooking("student-2", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-03-02",
		StartTime:       "10:30",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, apperrors.ErrSlotTaken)

	// Back-to-back is fine: intervals touch but do not intersect.
	_, err = svc.CreateBooking("student-2", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-03-02",
		StartTime:       "11:00",
		DurationMinutes: 30,
	})
	assert.NoError(t, err)
}

func TestUpdateBookingStatusTransitions(t *testing.T) {
	svc, bookingRepo, _ := newBookingFixture(t)

	resp, err := svc.CreateBooking("student-1", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	id := resp.ID

	// A student cannot confirm.
	_, err = svc.UpdateBookingStatus("student-1", models.UserRoleStudent, id,
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusConfirmed})
	require.Error(t, err)

	// The coach can.
	updated, err := svc.UpdateBookingStatus("coach-1", models.UserRoleCoach, id,
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)

	// Completing before the lesson starts is refused.
	_, err = svc.UpdateBookingStatus("coach-1", models.UserRoleCoach, id,
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusCompleted})
	require.Error(t, err)

	// Move the clock past the lesson and complete.
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC)
	}
	updated, err = svc.UpdateBookingStatus("coach-1", models.UserRoleCoach, id,
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, updated.Status)

	// Completed is terminal.
	_, err = svc.UpdateBookingStatus("coach-1", models.UserRoleCoach, id,
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusCancelled})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)

	stored, err := bookingRepo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, stored.Status)
}

func TestUpdateBookingStatusStrangerForbidden(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	resp, err := svc.CreateBooking("student-1", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	_, err = svc.UpdateBookingStatus("someone-else", models.UserRoleStudent, resp.ID,
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusCancelled})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	// An admin may cancel on either party's behalf.
	_, err = svc.UpdateBookingStatus("admin-1", models.UserRoleAdmin, resp.ID,
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusCancelled})
	assert.NoError(t, err)
}

func TestStudentCanCancelOwnBooking(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	resp, err := svc.CreateBooking("student-1", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBookingStatus("student-1", models.UserRoleStudent, resp.ID,
		&dto.UpdateBookingStatusRequest{Status: models.BookingStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)
}

func TestListBookingsForUser(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.CreateBooking("student-1", &dto.CreateBookingRequest{
		CoachID:         "coach-1",
		Date:            "2026-03-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	resp, err := svc.ListBookingsForUser("student-1")
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = svc.ListBookingsForUser("coach-1")
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	resp, err = svc.ListBookingsForUser("nobody")
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}
