package handlers

import (
	"net/http"

	"fairway_backend/internal/models"
	"fairway_backend/internal/services"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

// RegisterRoutes mounts the booking endpoints. Creation is student-only;
// everything else is shared between the two participants (and admins).
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, studentOnly gin.HandlerFunc) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", studentOnly, h.CreateBooking)
		bookings.GET("/my-bookings", h.MyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.bookingService.CreateBooking(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.bookingService.ListBookingsForUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bookingID := c.Param("id")
	if bookingID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing booking id"))
		return
	}

	resp, err := h.bookingService.GetBooking(userID, h.RoleOf(c), bookingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bookingID := c.Param("id")
	var req dto.UpdateBookingStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	role := h.RoleOf(c)
	if role == "" {
		role = models.UserRoleStudent
	}

	resp, err := h.bookingService.UpdateBookingStatus(userID, role, bookingID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
