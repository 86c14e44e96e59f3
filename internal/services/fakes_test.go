package services

import (
	"fmt"
	"time"

	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	seq      int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	f.seq++
	if b.ID == "" {
		b.ID = fmt.Sprintf("booking-%d", f.seq)
	}
	b.CreatedAt = time.Now()
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) FindByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) FindForUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.StudentID == userID || b.CoachID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindActiveForCoachOnDate(coachUserID string, date time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CoachID != coachUserID || !b.Date.Equal(date) {
			continue
		}
		if b.Status == models.BookingStatusPending || b.Status == models.BookingStatusConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(bookingID string, status models.BookingStatus) error {
	b, ok := f.bookings[bookingID]
	if !ok {
		return repositories.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type fakeCoachRepo struct {
	profiles map[string]*models.CoachProfile // by profile id
	ratings  map[string][2]float64
}

func newFakeCoachRepo() *fakeCoachRepo {
	return &fakeCoachRepo{
		profiles: map[string]*models.CoachProfile{},
		ratings:  map[string][2]float64{},
	}
}

func (f *fakeCoachRepo) add(p *models.CoachProfile) {
	f.profiles[p.ID] = p
}

func (f *fakeCoachRepo) Create(p *models.CoachProfile) error {
	if p.ID == "" {
		p.ID = "coach-profile-" + p.UserID
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeCoachRepo) FindByID(id string) (*models.CoachProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrCoachNotFound
	}
	return p, nil
}

func (f *fakeCoachRepo) FindByUserID(userID string) (*models.CoachProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrCoachNotFound
}

func (f *fakeCoachRepo) Update(p *models.CoachProfile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeCoachRepo) FindApproved(filter repositories.CoachFilter) ([]models.CoachProfile, int64, error) {
	var out []models.CoachProfile
	for _, p := range f.profiles {
		if p.IsApproved() {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCoachRepo) FindByStatus(status models.ApprovalStatus, limit, offset int) ([]models.CoachProfile, int64, error) {
	var out []models.CoachProfile
	for _, p := range f.profiles {
		if p.ApprovalStatus == status {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCoachRepo) SetApproval(coachID string, status models.ApprovalStatus, adminID string, reason string, at time.Time) error {
	p, ok := f.profiles[coachID]
	if !ok {
		return repositories.ErrCoachNotFound
	}
	p.ApprovalStatus = status
	p.ApprovedBy = &adminID
	p.ApprovedAt = &at
	p.RejectionReason = reason
	return nil
}

func (f *fakeCoachRepo) UpdateRatingCache(coachID string, average float64, total int64) error {
	f.ratings[coachID] = [2]float64{average, float64(total)}
	if p, ok := f.profiles[coachID]; ok {
		p.AverageRating = average
		p.TotalReviews = total
	}
	return nil
}

type fakeUserRepo struct {
	users  map[string]*models.User
	tokens map[string]*models.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  map[string]*models.User{},
		tokens: map[string]*models.RefreshToken{},
	}
}

func (f *fakeUserRepo) add(u *models.User) {
	f.users[u.ID] = u
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(u *models.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = "user-" + u.Email
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateStatus(userID string, status models.UserStatus) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeUserRepo) FindByRole(role models.UserRole, limit, offset int) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CreateRefreshToken(token *models.RefreshToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(token string) (*models.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return t, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeUserRepo) DeleteUserRefreshTokens(userID string) error {
	for k, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, k)
		}
	}
	return nil
}

type fakeStudentRepo struct {
	profiles map[string]*models.StudentProfile
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{profiles: map[string]*models.StudentProfile{}}
}

func (f *fakeStudentRepo) Create(p *models.StudentProfile) error {
	if p.ID == "" {
		p.ID = "student-profile-" + p.UserID
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeStudentRepo) FindByID(id string) (*models.StudentProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrStudentNotFound
	}
	return p, nil
}

func (f *fakeStudentRepo) FindByUserID(userID string) (*models.StudentProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (f *fakeStudentRepo) Update(p *models.StudentProfile) error {
	f.profiles[p.ID] = p
	return nil
}

type fakeReviewRepo struct {
	reviews map[string]*models.Review
	seq     int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*models.Review{}}
}

func (f *fakeReviewRepo) Create(r *models.Review) error {
	for _, existing := range f.reviews {
		if existing.BookingID == r.BookingID {
			return repositories.ErrReviewAlreadyExists
		}
	}
	f.seq++
	if r.ID == "" {
		r.ID = fmt.Sprintf("review-%d", f.seq)
	}
	r.CreatedAt = time.Now()
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeReviewRepo) FindByID(id string) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeReviewRepo) FindByBookingID(bookingID string) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.BookingID == bookingID {
			return r, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (f *fakeReviewRepo) FindByCoach(coachUserID string, limit, offset int) ([]models.Review, int64, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.CoachID == coachUserID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) GetCoachRatingStats(coachUserID string) (*repositories.RatingStats, error) {
	var sum, count int64
	for _, r := range f.reviews {
		if r.CoachID == coachUserID {
			sum += int64(r.Rating)
			count++
		}
	}
	stats := &repositories.RatingStats{TotalReviews: count}
	if count > 0 {
		stats.AverageRating = float64(sum) / float64(count)
	}
	return stats, nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.sent = append(f.sent, to+": "+subject)
	return nil
}
