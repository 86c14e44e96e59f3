package handlers

import (
	"net/http"

	"fairway_backend/internal/services"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CoachHandler struct {
	*BaseHandler
	coachService  services.CoachService
	reviewService services.ReviewService
}

func NewCoachHandler(base *BaseHandler, coachService services.CoachService, reviewService services.ReviewService) *CoachHandler {
	return &CoachHandler{
		BaseHandler:   base,
		coachService:  coachService,
		reviewService: reviewService,
	}
}

// RegisterRoutes mounts the public coach directory and the coach's own
// profile management.
func (h *CoachHandler) RegisterRoutes(public, coachOnly *gin.RouterGroup) {
	coaches := public.Group("/coaches")
	{
		coaches.GET("", h.SearchCoaches)
		coaches.GET("/:id", h.GetCoach)
		coaches.GET("/:id/reviews", h.ListReviews)
	}

	me := coachOnly.Group("/coaches/me")
	{
		me.GET("", h.MyProfile)
		me.PUT("", h.UpdateMyProfile)
	}
}

// SearchCoaches lists approved coaches with optional filters and sorting.
func (h *CoachHandler) SearchCoaches(c *gin.Context) {
	var req dto.SearchCoachesRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.coachService.SearchCoaches(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CoachHandler) GetCoach(c *gin.Context) {
	coachID := c.Param("id")
	if coachID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing coach id"))
		return
	}

	resp, err := h.coachService.GetCoach(coachID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListReviews returns a coach's reviews. The :id here is the coach profile
// id; reviews are keyed by the coach's user id internally.
func (h *CoachHandler) ListReviews(c *gin.Context) {
	coachID := c.Param("id")

	detail, err := h.coachService.GetCoach(coachID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.reviewService.ListCoachReviews(detail.UserID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CoachHandler) MyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.coachService.GetMyProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CoachHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCoachProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.coachService.UpdateMyProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
