package chat

import (
	"errors"

	"fairway_backend/internal/models/chat"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ConversationRepository struct {
	DB *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

// GetOrCreate inserts the (coach, student) conversation or returns the
// existing one. The insert uses ON CONFLICT DO NOTHING against the composite
// unique index, so two concurrent first-contact requests converge on a single
// row without any application-level locking.
func (r *ConversationRepository) GetOrCreate(coachID, studentID string) (*chat.Conversation, bool, error) {
	conv := &chat.Conversation{
		CoachID:   coachID,
		StudentID: studentID,
	}

	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "coach_id"}, {Name: "student_id"}},
		DoNothing: true,
	}).Create(conv)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected > 0 {
		return conv, true, nil
	}

	// Conflict path: another request won the insert, fetch its row.
	existing, err := r.FindByPair(coachID, studentID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *ConversationRepository) FindByID(id string) (*chat.Conversation, error) {
	var conv chat.Conversation
	err := r.DB.First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepository) FindByPair(coachID, studentID string) (*chat.Conversation, error) {
	var conv chat.Conversation
	err := r.DB.First(&conv, "coach_id = ? AND student_id = ?", coachID, studentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// FindAllByUser returns every conversation where the user is either party.
func (r *ConversationRepository) FindAllByUser(userID string) ([]chat.Conversation, error) {
	var convs []chat.Conversation
	err := r.DB.
		Where("coach_id = ? OR student_id = ?", userID, userID).
		Find(&convs).Error
	return convs, err
}
