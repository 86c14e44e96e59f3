package handlers

import (
	"net/http"

	chatservice "fairway_backend/internal/services/chat"

	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService chatservice.ChatService
}

func NewChatHandler(base *BaseHandler, chatService chatservice.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

// RegisterRoutes mounts the messaging endpoints. All of them require auth.
func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/conversation", h.CreateConversation)
	r.GET("/conversations", h.ListConversations)
	r.POST("/message", h.SendMessage)
	r.GET("/messages/:conversationId", h.ListMessages)
	r.POST("/conversations/:conversationId/read", h.MarkRead)
}

// CreateConversation opens the channel with the other party, or returns the
// existing one. Safe to call repeatedly.
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateConversationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.GetOrCreateConversation(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.SendMessage(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	conversationID := c.Param("conversationId")
	if conversationID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing conversation id"))
		return
	}

	messages, err := h.chatService.ListMessages(userID, conversationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.chatService.ListConversations(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	conversationID := c.Param("conversationId")
	if err := h.chatService.MarkRead(userID, conversationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation marked as read"})
}
