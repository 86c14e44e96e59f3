package chat

import (
	"sort"
	"strings"
	"time"

	chatmodels "fairway_backend/internal/models/chat"

	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
	chatrepo "fairway_backend/internal/repositories/chat"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

// ConversationStore is the slice of the conversation repository the service
// needs. Satisfied by *chatrepo.ConversationRepository.
type ConversationStore interface {
	GetOrCreate(coachID, studentID string) (*chatmodels.Conversation, bool, error)
	FindByID(id string) (*chatmodels.Conversation, error)
	FindAllByUser(userID string) ([]chatmodels.Conversation, error)
}

// MessageStore is the slice of the message repository the service needs.
type MessageStore interface {
	Create(message *chatmodels.Message) error
	FindByConversation(conversationID string) ([]chatmodels.Message, error)
	FindLast(conversationID string) (*chatmodels.Message, error)
	CountUnread(conversationID, userID string) (int64, error)
	MarkAllRead(conversationID, userID string, at time.Time) error
}

type ChatService interface {
	GetOrCreateConversation(actorID string, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	SendMessage(actorID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	ListMessages(actorID, conversationID string) ([]dto.MessageResponse, error)
	ListConversations(actorID string) (*dto.ConversationListResponse, error)
	MarkRead(actorID, conversationID string) error
}

type chatService struct {
	convRepo ConversationStore
	msgRepo  MessageStore
	userRepo repositories.UserRepository
}

func NewChatService(
	convRepo ConversationStore,
	msgRepo MessageStore,
	userRepo repositories.UserRepository,
) ChatService {
	return &chatService{
		convRepo: convRepo,
		msgRepo:  msgRepo,
		userRepo: userRepo,
	}
}

// GetOrCreateConversation resolves the caller's side from their role: a
// student supplies coachId, a coach supplies studentId. The pair maps to at
// most one conversation regardless of who opened it first.
func (s *chatService) GetOrCreateConversation(actorID string, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Unknown user")
	}

	var coachID, studentID string
	switch actor.Role {
	case models.UserRoleStudent:
		if req.CoachID == "" {
			return nil, apperrors.NewBadRequestError("coachId is required")
		}
		coachID, studentID = req.CoachID, actor.ID
	case models.UserRoleCoach:
		if req.StudentID == "" {
			return nil, apperrors.NewBadRequestError("studentId is required")
		}
		coachID, studentID = actor.ID, req.StudentID
	default:
		return nil, apperrors.ErrInsufficientPermissions
	}

	if coachID == studentID {
		return nil, apperrors.NewBadRequestError("Cannot start a conversation with yourself")
	}

	counterpartID := coachID
	counterpartRole := models.UserRoleCoach
	if actor.Role == models.UserRoleCoach {
		counterpartID = studentID
		counterpartRole = models.UserRoleStudent
	}
	counterpart, err := s.userRepo.FindByID(counterpartID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}
	if counterpart.Role != counterpartRole {
		return nil, apperrors.NewBadRequestError("The other party has the wrong role for this conversation")
	}

	conv, _, err := s.convRepo.GetOrCreate(coachID, studentID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return toConversationResponse(conv), nil
}

func (s *chatService) SendMessage(actorID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyMessage
	}

	conv, err := s.authorizeParticipant(actorID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	message := &chatmodels.Message{
		ConversationID: conv.ID,
		SenderID:       actorID,
		Content:        content,
	}
	if err := s.msgRepo.Create(message); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return toMessageResponse(message), nil
}

func (s *chatService) ListMessages(actorID, conversationID string) ([]dto.MessageResponse, error) {
	if _, err := s.authorizeParticipant(actorID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.msgRepo.FindByConversation(conversationID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, *toMessageResponse(&messages[i]))
	}
	return out, nil
}

// ListConversations returns the caller's inbox, most recent activity first.
// Conversations without messages sort last, newest created first.
func (s *chatService) ListConversations(actorID string) (*dto.ConversationListResponse, error) {
	convs, err := s.convRepo.FindAllByUser(actorID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	type row struct {
		summary  dto.ConversationSummary
		activity time.Time
	}

	rows := make([]row, 0, len(convs))
	names := map[string]string{}

	for i := range convs {
		conv := &convs[i]

		last, err := s.msgRepo.FindLast(conv.ID)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		unread, err := s.msgRepo.CountUnread(conv.ID, actorID)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}

		summary := dto.ConversationSummary{
			ID:          conv.ID,
			CoachID:     conv.CoachID,
			CoachName:   s.displayName(names, conv.CoachID),
			StudentID:   conv.StudentID,
			StudentName: s.displayName(names, conv.StudentID),
			UnreadCount: unread,
			CreatedAt:   conv.CreatedAt,
		}

		activity := conv.CreatedAt
		if last != nil {
			summary.LastMessage = last.Content
			t := last.CreatedAt
			summary.LastMessageTime = &t
			activity = last.CreatedAt
		}

		rows = append(rows, row{summary: summary, activity: activity})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if (a.summary.LastMessageTime != nil) != (b.summary.LastMessageTime != nil) {
			return a.summary.LastMessageTime != nil
		}
		return a.activity.After(b.activity)
	})

	out := make([]dto.ConversationSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.summary)
	}
	return &dto.ConversationListResponse{Conversations: out}, nil
}

// MarkRead stamps every message from the counterpart as read. Calling it
// twice is harmless.
func (s *chatService) MarkRead(actorID, conversationID string) error {
	if _, err := s.authorizeParticipant(actorID, conversationID); err != nil {
		return err
	}
	if err := s.msgRepo.MarkAllRead(conversationID, actorID, time.Now()); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *chatService) authorizeParticipant(actorID, conversationID string) (*chatmodels.Conversation, error) {
	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		if apperrors.Is(err, chatrepo.ErrConversationNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	if !conv.HasParticipant(actorID) {
		return nil, apperrors.ErrNotAParticipant
	}
	return conv, nil
}

func (s *chatService) displayName(cache map[string]string, userID string) string {
	if name, ok := cache[userID]; ok {
		return name
	}
	name := ""
	if user, err := s.userRepo.FindByID(userID); err == nil {
		switch {
		case user.CoachProfile != nil && user.CoachProfile.Name != "":
			name = user.CoachProfile.Name
		case user.StudentProfile != nil && user.StudentProfile.Name != "":
			name = user.StudentProfile.Name
		default:
			name = user.Email
		}
	}
	cache[userID] = name
	return name
}

func toConversationResponse(conv *chatmodels.Conversation) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		ID:        conv.ID,
		CoachID:   conv.CoachID,
		StudentID: conv.StudentID,
		CreatedAt: conv.CreatedAt,
	}
}

func toMessageResponse(m *chatmodels.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}
