package chat

import "time"

// Conversation is the durable channel between exactly one coach and one
// student. The composite unique index backs the atomic get-or-create: two
// concurrent first-contact requests can never produce a second row.
type Conversation struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CoachID   string `gorm:"not null;index;uniqueIndex:idx_conversations_pair"`   // User id
	StudentID string `gorm:"not null;index;uniqueIndex:idx_conversations_pair"`   // User id
	CreatedAt time.Time
	UpdatedAt time.Time

	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

func (Conversation) TableName() string {
	return "chat.conversations"
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.CoachID == userID || c.StudentID == userID
}

// Counterpart returns the other party's user id, or "" for non-participants.
func (c *Conversation) Counterpart(userID string) string {
	switch userID {
	case c.CoachID:
		return c.StudentID
	case c.StudentID:
		return c.CoachID
	}
	return ""
}
