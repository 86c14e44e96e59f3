package dto

import "time"

// CreateConversationRequest opens (or finds) the channel between the caller
// and the other party. Students pass coachId, coaches pass studentId; the
// caller's own side is taken from the session.
type CreateConversationRequest struct {
	CoachID   string `json:"coachId,omitempty" validate:"omitempty,uuid"`
	StudentID string `json:"studentId,omitempty" validate:"omitempty,uuid"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversationId" binding:"required" validate:"required,uuid"`
	Content        string `json:"content" binding:"required" validate:"required"`
}

type ConversationResponse struct {
	ID        string    `json:"id"`
	CoachID   string    `json:"coachId"`
	StudentID string    `json:"studentId"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessageResponse struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	SenderID       string     `json:"senderId"`
	Content        string     `json:"content"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ConversationSummary is one row of the inbox listing.
type ConversationSummary struct {
	ID              string     `json:"id"`
	CoachID         string     `json:"coachId"`
	CoachName       string     `json:"coachName"`
	StudentID       string     `json:"studentId"`
	StudentName     string     `json:"studentName"`
	LastMessage     string     `json:"lastMessage,omitempty"`
	LastMessageTime *time.Time `json:"lastMessageTime,omitempty"`
	UnreadCount     int64      `json:"unreadCount"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type ConversationListResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
}
