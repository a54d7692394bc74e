package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/bookwise/internal/auth"
	"github.com/yoockh/bookwise/internal/utils"
)

// TokenHandler mints media-server room tokens for the voice client.
type TokenHandler struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenHandler(apiKey, apiSecret string) *TokenHandler {
	return &TokenHandler{apiKey: apiKey, apiSecret: apiSecret, ttl: 6 * time.Hour, now: time.Now}
}

type TokenRequest struct {
	RoomName string `json:"room_name" binding:"required"`
	Identity string `json:"identity" binding:"required"`
}

func (h *TokenHandler) Create(c *gin.Context) {
	const op = "TokenHandler.Create"

	if h.apiKey == "" || h.apiSecret == "" {
		writeError(c, utils.E(utils.CodeUnavailable, op, "LiveKit API key or secret not set", nil))
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "room_name and identity are required", err))
		return
	}

	tok, err := auth.LiveKitToken(h.apiKey, h.apiSecret, req.Identity, req.RoomName, h.ttl, h.now())
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to create token", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": tok})
}
