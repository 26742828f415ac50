package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/firstcreditunion/loan-status-hub-sub000/internal/http/handlers"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/http/middleware"
)

func BuildRouter(vh *handlers.VerificationHandlers, edge *middleware.IPLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.ClientInfo(), edge.Limit())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	verification := r.Group("/verification")
	verification.POST("/request", vh.RequestCode)
	verification.POST("/verify", vh.VerifyCode)

	session := r.Group("/session")
	session.POST("/status", vh.SessionStatus)

	return r
}
