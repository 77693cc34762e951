package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes, all read only
	v1 := router.Group("/api/v1")
	{
		v1.GET("/accounts/:address", handler.GetAccount)
		v1.GET("/accounts/:address/tokens", handler.ListAccountTokens)

		v1.GET("/tokens/:id", handler.GetToken)
		v1.GET("/tokens", handler.ListTokens)

		v1.GET("/transfers", handler.ListTransfers)

		v1.GET("/owners/leaderboard", handler.GetLeaderboard)

		v1.GET("/collection/stats", handler.GetCollectionStats)
	}
}
