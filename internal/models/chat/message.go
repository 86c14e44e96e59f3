package chat

import "time"

// Message is append-only: rows are never mutated except for ReadAt, and never
// deleted outside the owning conversation's cascade.
type Message struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ConversationID string `gorm:"index;not null"`
	SenderID       string `gorm:"index;not null"` // User id
	Content        string `gorm:"type:text;not null"`
	ReadAt         *time.Time
	CreatedAt      time.Time `gorm:"index"`
}

func (Message) TableName() string {
	return "chat.messages"
}
