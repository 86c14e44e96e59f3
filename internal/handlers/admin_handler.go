package handlers

import (
	"net/http"

	"fairway_backend/internal/services"
	"fairway_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	coachService services.CoachService
}

func NewAdminHandler(base *BaseHandler, coachService services.CoachService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		coachService: coachService,
	}
}

// RegisterRoutes mounts the admin moderation endpoints.
func (h *AdminHandler) RegisterRoutes(adminOnly *gin.RouterGroup) {
	coaches := adminOnly.Group("/admin/coaches")
	{
		coaches.GET("/pending", h.ListPending)
		coaches.POST("/:id/approve", h.Approve)
		coaches.POST("/:id/reject", h.Reject)
	}
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.coachService.ListPending(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.coachService.ApproveCoach(adminID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coach approved"})
}

func (h *AdminHandler) Reject(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// The reason body is optional.
	var req dto.RejectCoachRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.coachService.RejectCoach(adminID, c.Param("id"), req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coach rejected"})
}
