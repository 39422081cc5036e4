package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/http/handlers"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/social", ah.SocialLogin)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.POST("/logout", ah.Logout)

	v := r.Group("/").Use(jwtmw.WithJWT())
	v.GET("/auth/me", ah.Me)

	return r
}
