package chat

import (
	"errors"
	"time"

	"fairway_backend/internal/models/chat"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(message *chat.Message) error {
	return r.DB.Create(message).Error
}

// FindByConversation returns the full history, oldest first.
func (r *MessageRepository) FindByConversation(conversationID string) ([]chat.Message, error) {
	var messages []chat.Message
	err := r.DB.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// FindLast returns the most recent message, or nil when the conversation has
// no messages yet.
func (r *MessageRepository) FindLast(conversationID string) (*chat.Message, error) {
	var message chat.Message
	err := r.DB.
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// CountUnread counts messages addressed to userID that were not read yet.
func (r *MessageRepository) CountUnread(conversationID, userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&chat.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, userID).
		Count(&count).Error
	return count, err
}

// MarkAllRead stamps every message not sent by userID as read. Idempotent:
// already-read messages keep their original timestamp.
func (r *MessageRepository) MarkAllRead(conversationID, userID string, at time.Time) error {
	return r.DB.Model(&chat.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, userID).
		Update("read_at", at).Error
}
