package services

import (
	"fmt"
	"time"

	"fairway_backend/internal/email"
	"fairway_backend/internal/logger"
	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

type BookingService interface {
	CreateBooking(studentID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	UpdateBookingStatus(actorID string, actorRole models.UserRole, bookingID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	ListBookingsForUser(userID string) (*dto.BookingListResponse, error)
	GetBooking(actorID string, actorRole models.UserRole, bookingID string) (*dto.BookingResponse, error)
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	coachRepo   repositories.CoachRepository
	mailer      email.Provider
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	coachRepo repositories.CoachRepository,
	mailer email.Provider,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		coachRepo:   coachRepo,
		mailer:      mailer,
		now:         time.Now,
	}
}

// CreateBooking books a lesson with an approved coach. The slot must lie in
// the future and must not overlap any of the coach's pending or confirmed
// bookings on that day. Price is the coach's hourly rate scaled by duration.
func (s *bookingService) CreateBooking(studentID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}
	if !allowedDuration(req.DurationMinutes) {
		return nil, apperrors.NewBadRequestError("Duration must be 30, 60 or 90 minutes")
	}
	if req.CoachID == studentID {
		return nil, apperrors.NewBadRequestError("Cannot book a lesson with yourself")
	}

	coach, err := s.coachRepo.FindByUserID(req.CoachID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCoachNotFound) {
			return nil, apperrors.ErrCoachNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	if !coach.IsApproved() {
		return nil, apperrors.ErrCoachNotApproved
	}

	booking := &models.Booking{
		StudentID:       studentID,
		CoachID:         req.CoachID,
		Date:            date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		LessonType:      req.LessonType,
		Location:        req.Location,
		Status:          models.BookingStatusPending,
		TotalAmount:     coach.PricePerHour * float64(req.DurationMinutes) / 60,
	}

	start, err := booking.StartsAt()
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid time, expected HH:MM")
	}
	if !start.After(s.now()) {
		return nil, apperrors.NewBadRequestError("Booking must be in the future")
	}

	existing, err := s.bookingRepo.FindActiveForCoachOnDate(req.CoachID, date)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	for i := range existing {
		if booking.Overlaps(&existing[i]) {
			return nil, apperrors.ErrSlotTaken
		}
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	// Reload with participants for the response names.
	created, err := s.bookingRepo.FindByID(booking.ID)
	if err != nil {
		created = booking
	}
	return toBookingResponse(created), nil
}

// UpdateBookingStatus drives the booking through its status graph. Only the
// two participants and admins may touch a booking, and each edge has its own
// actor rules: coaches confirm, coaches and admins complete (after the lesson
// started), either side cancels.
func (s *bookingService) UpdateBookingStatus(actorID string, actorRole models.UserRole, bookingID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	if !models.ValidBookingStatus(req.Status) {
		return nil, apperrors.ErrInvalidStatus("booking", "Unknown booking status")
	}

	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	isAdmin := actorRole == models.UserRoleAdmin
	isCoach := actorID == booking.CoachID
	isStudent := actorID == booking.StudentID
	if !isAdmin && !isCoach && !isStudent {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if !models.CanTransition(booking.Status, req.Status) {
		return nil, apperrors.ErrInvalidTransition("booking",
			"Cannot change booking from "+string(booking.Status)+" to "+string(req.Status))
	}

	switch req.Status {
	case models.BookingStatusConfirmed:
		if !isCoach && !isAdmin {
			return nil, apperrors.NewForbiddenError("Only the coach can confirm a booking")
		}
	case models.BookingStatusCompleted:
		if !isCoach && !isAdmin {
			return nil, apperrors.NewForbiddenError("Only the coach can complete a booking")
		}
		start, err := booking.StartsAt()
		if err == nil && s.now().Before(start) {
			return nil, apperrors.ErrInvalidStatus("booking", "Cannot complete a lesson before it starts")
		}
	case models.BookingStatusCancelled:
		// Either participant or an admin.
	}

	if err := s.bookingRepo.UpdateStatus(bookingID, req.Status); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	booking.Status = req.Status
	s.notifyStatusChange(booking, actorID)
	return toBookingResponse(booking), nil
}

// notifyStatusChange mails the participant who did not make the change.
// Delivery failures are logged and never fail the request.
func (s *bookingService) notifyStatusChange(booking *models.Booking, actorID string) {
	var recipient *models.User
	if actorID == booking.StudentID {
		recipient = booking.Coach
	} else {
		recipient = booking.Student
	}
	if recipient == nil || recipient.Email == "" {
		return
	}

	subject := fmt.Sprintf("Lesson on %s is now %s", booking.Date.Format("Jan 2"), booking.Status)
	body := fmt.Sprintf("<p>Your lesson on %s at %s is now <b>%s</b>.</p>",
		booking.Date.Format("January 2, 2006"), booking.StartTime, booking.Status)
	if err := s.mailer.Send(recipient.Email, subject, body); err != nil {
		logger.WithError(err).Warn("booking status notification failed", "booking_id", booking.ID)
	}
}

// ListBookingsForUser returns every booking where the user is the student or
// the coach, newest lesson first.
func (s *bookingService) ListBookingsForUser(userID string) (*dto.BookingListResponse, error) {
	bookings, err := s.bookingRepo.FindForUser(userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *toBookingResponse(&bookings[i]))
	}
	return &dto.BookingListResponse{Bookings: out}, nil
}

func (s *bookingService) GetBooking(actorID string, actorRole models.UserRole, bookingID string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}

	if actorRole != models.UserRoleAdmin && actorID != booking.CoachID && actorID != booking.StudentID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return toBookingResponse(booking), nil
}

func allowedDuration(minutes int) bool {
	for _, d := range models.AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

func toBookingResponse(b *models.Booking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:              b.ID,
		StudentID:       b.StudentID,
		CoachID:         b.CoachID,
		Date:            b.Date.Format("2006-01-02"),
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		LessonType:      b.LessonType,
		Location:        b.Location,
		Status:          b.Status,
		TotalAmount:     b.TotalAmount,
		CreatedAt:       b.CreatedAt,
	}
	if b.Student != nil {
		if b.Student.StudentProfile != nil {
			resp.StudentName = b.Student.StudentProfile.Name
		} else {
			resp.StudentName = b.Student.Email
		}
	}
	if b.Coach != nil {
		if b.Coach.CoachProfile != nil {
			resp.CoachName = b.Coach.CoachProfile.Name
		} else {
			resp.CoachName = b.Coach.Email
		}
	}
	return resp
}
