package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomcraft/referral/internal/server/http/dto"
)

// BalanceHandler manages balance and earnings endpoints.
type BalanceHandler struct {
	facade LedgerFacade
}

// NewBalanceHandler constructs BalanceHandler.
func NewBalanceHandler(facade LedgerFacade) *BalanceHandler {
	return &BalanceHandler{facade: facade}
}

// Summary handles GET /api/user/balance.
func (h *BalanceHandler) Summary(c *gin.Context) {
	accountID := CurrentAccountID(c)
	summary, err := h.facade.Balance(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		Balance:   summary.Balance,
		Available: summary.Available,
		Pending:   summary.Pending,
	})
}

// Earnings handles GET /api/user/earnings.
func (h *BalanceHandler) Earnings(c *gin.Context) {
	accountID := CurrentAccountID(c)
	earnings, err := h.facade.Earnings(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(earnings) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.EarningResponse, 0, len(earnings))
	for _, e := range earnings {
		resp = append(resp, dto.EarningResponse{
			Amount:        e.Amount,
			OrderAmount:   e.OrderAmount,
			Percentage:    e.Percentage,
			ReferredEmail: e.ReferredEmail,
			Reversed:      e.IsReversed,
			CreatedAt:     e.CreatedAt,
			AvailableAt:   e.AvailableAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Referral handles GET /api/user/referral.
func (h *BalanceHandler) Referral(c *gin.Context) {
	accountID := CurrentAccountID(c)
	account, err := h.facade.ReferralInfo(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ReferralResponse{Code: account.ReferralCode})
}
