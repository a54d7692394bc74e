package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthInfo describes which backends the process was started with.
type HealthInfo struct {
	Version  string
	Database string // mongodb|memory
	Cache    string // redis|memory
	Email    bool
	Speech   bool
}

type HealthHandler struct {
	info HealthInfo
	now  func() time.Time
}

func NewHealthHandler(info HealthInfo) *HealthHandler {
	return &HealthHandler{info: info, now: time.Now}
}

func (h *HealthHandler) Get(c *gin.Context) {
	email, speech := "not_configured", "unavailable"
	if h.info.Email {
		email = "configured"
	}
	if h.info.Speech {
		speech = "available"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"services": gin.H{
			"database": h.info.Database,
			"cache":    h.info.Cache,
			"email":    email,
			"speech":   speech,
		},
		"version":   h.info.Version,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
