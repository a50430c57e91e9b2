package refunds

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotelio/internal/bookings"
	"hotelio/internal/payments"
	"hotelio/internal/shared/utils/response"
	"hotelio/internal/users"
)

type Controller interface {
	RequestRefund(c *gin.Context)
	DecideRefund(c *gin.Context)
	GetRefundStatus(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func requester(c *gin.Context) (uuid.UUID, bool, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false, false
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		return uuid.Nil, false, false
	}

	role, _ := c.Get("user_role")
	isAdmin := role == string(users.RoleAdmin)

	return userUUID, isAdmin, true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrNotEligible):
		return http.StatusConflict
	case errors.Is(err, ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, payments.ErrPaymentProvider):
		return http.StatusBadGateway
	case errors.Is(err, bookings.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, bookings.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, bookings.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (ctrl *controller) RequestRefund(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	var req RequestRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, _, ok := requester(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	refund, err := ctrl.service.RequestRefund(c.Request.Context(), userID, bookingID, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Refund requested successfully", refund, nil)
}

func (ctrl *controller) DecideRefund(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	var req DecideRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminID, _, ok := requester(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	refund, err := ctrl.service.DecideRefund(c.Request.Context(), adminID, bookingID, req)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Refund decision recorded", refund, nil)
}

func (ctrl *controller) GetRefundStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	userID, isAdmin, ok := requester(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	refund, err := ctrl.service.GetRefundStatus(c.Request.Context(), userID, isAdmin, bookingID)
	if err != nil {
		response.RespondJSON(c, "error", statusForError(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Refund status retrieved successfully", refund, nil)
}
