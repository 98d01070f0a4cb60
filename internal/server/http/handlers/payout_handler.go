package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/roomcraft/referral/internal/domain/errors"
	"github.com/roomcraft/referral/internal/domain/model"
	"github.com/roomcraft/referral/internal/server/http/dto"
)

// PayoutHandler manages payout request endpoints.
type PayoutHandler struct {
	facade PayoutFacade
}

// NewPayoutHandler constructs PayoutHandler.
func NewPayoutHandler(facade PayoutFacade) *PayoutHandler {
	return &PayoutHandler{facade: facade}
}

// Request handles POST /api/user/payouts.
func (h *PayoutHandler) Request(c *gin.Context) {
	accountID := CurrentAccountID(c)
	request, err := h.facade.RequestPayout(c.Request.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInsufficientAvailable), errors.Is(err, domainErrors.ErrNegativeBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrPayoutPending):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, payoutResponse(request))
}

// History handles GET /api/user/payouts.
func (h *PayoutHandler) History(c *gin.Context) {
	accountID := CurrentAccountID(c)
	requests, err := h.facade.Payouts(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(requests) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.PayoutResponse, 0, len(requests))
	for i := range requests {
		resp = append(resp, payoutResponse(&requests[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Resolve handles POST /api/operator/payouts/:id/resolve.
func (h *PayoutHandler) Resolve(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	var req dto.PayoutResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	request, err := h.facade.ResolvePayout(c.Request.Context(), requestID, req.Decision)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidDecision):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyResolved):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, payoutResponse(request))
}

func payoutResponse(request *model.PayoutRequest) dto.PayoutResponse {
	return dto.PayoutResponse{
		ID:          request.ID,
		Amount:      request.Amount,
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt,
		ProcessedAt: request.ProcessedAt,
	}
}
