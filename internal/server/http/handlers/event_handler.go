package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/roomcraft/referral/internal/domain/errors"
	"github.com/roomcraft/referral/internal/server/http/dto"
)

// EventHandler ingests payment and refund events from the billing integration.
type EventHandler struct {
	facade LedgerFacade
}

// NewEventHandler constructs EventHandler.
func NewEventHandler(facade LedgerFacade) *EventHandler {
	return &EventHandler{facade: facade}
}

// Payment handles POST /api/events/payment.
func (h *EventHandler) Payment(c *gin.Context) {
	var req dto.PaymentEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	earning, err := h.facade.RecordPayment(c.Request.Context(), req.PayerID, req.Amount, req.PaymentRef)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrDuplicateAccrual):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	// Payers without a referrer produce no accrual; the event is still accepted.
	if earning == nil {
		c.Status(http.StatusOK)
		return
	}
	c.Status(http.StatusAccepted)
}

// Refund handles POST /api/events/refund.
func (h *EventHandler) Refund(c *gin.Context) {
	var req dto.RefundEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	reversed, err := h.facade.RecordRefund(c.Request.Context(), req.PayerEmail, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.RefundResponse{Reversed: reversed})
}
