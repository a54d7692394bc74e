package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yoockh/bookwise/internal/api/handlers"
	"github.com/yoockh/bookwise/internal/api/middleware"
	"github.com/yoockh/bookwise/internal/auth"
)

type Deps struct {
	Issuer *auth.Issuer

	Health     *handlers.HealthHandler
	Token      *handlers.TokenHandler
	Transcript *handlers.TranscriptHandler
	Order      *handlers.OrderHandler
	Feedback   *handlers.FeedbackHandler
	Admin      *handlers.AdminHandler
	Export     *handlers.ExportHandler

	// WS is nil when the process runs without redis.
	WS *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", d.Health.Get)

	// Voice client
	r.POST("/token", d.Token.Create)
	r.POST("/process-transcription", d.Transcript.Process)
	r.GET("/rooms/:room_id", d.Transcript.Room)
	r.POST("/orders/submit", d.Order.Submit)
	r.POST("/feedback", d.Feedback.Create)
	r.GET("/feedback/room/:room_id", d.Feedback.ByRoom)
	if d.WS != nil {
		r.GET("/ws/rooms/:room_id", d.WS.RoomWS)
	}

	// Admin accounts
	authGroup := r.Group("/api/auth")
	authGroup.POST("/admin/register", d.Admin.Register)
	authGroup.GET("/admin/verify-email", d.Admin.VerifyEmail)
	authGroup.POST("/login", d.Admin.Login)
	authGroup.POST("/logout", d.Admin.Logout)
	authGroup.GET("/me", middleware.JWTAuth(d.Issuer), d.Admin.Me)

	// Staff only
	admin := r.Group("/")
	admin.Use(middleware.JWTAuth(d.Issuer), middleware.RequireAdmin())

	admin.GET("/transcripts/all", d.Transcript.All)
	admin.GET("/orders/all", d.Order.All)
	admin.GET("/rooms/:room_id/events", d.Order.Events)
	admin.GET("/feedback/all", d.Feedback.All)
	admin.GET("/api/admin/list", d.Admin.List)
	admin.GET("/api/admin/export-orders", d.Export.Orders)
	admin.GET("/api/admin/export-admins", d.Export.Admins)
	admin.GET("/export/data", d.Export.Data)
}
