package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/roomcraft/referral/internal/server/http/middleware"
)

// CurrentAccountID extracts authenticated account identifier from context.
func CurrentAccountID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.AccountIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}
