package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/roomcraft/referral/internal/config"
	"github.com/roomcraft/referral/internal/server/http/handlers"
	"github.com/roomcraft/referral/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ReferralFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "Content-Encoding"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(facade)
	balanceHandler := handlers.NewBalanceHandler(facade)
	payoutHandler := handlers.NewPayoutHandler(facade)
	eventHandler := handlers.NewEventHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/balance", balanceHandler.Summary)
	userAuth.GET("/earnings", balanceHandler.Earnings)
	userAuth.GET("/referral", balanceHandler.Referral)
	userAuth.GET("/payouts", payoutHandler.History)
	userAuth.POST("/payouts", payoutHandler.Request)

	events := api.Group("/events")
	events.Use(middleware.InternalOnly(cfg.InternalToken))
	events.POST("/payment", eventHandler.Payment)
	events.POST("/refund", eventHandler.Refund)

	operator := api.Group("/operator")
	operator.Use(middleware.InternalOnly(cfg.InternalToken))
	operator.POST("/payouts/:id/resolve", payoutHandler.Resolve)

	return engine
}
