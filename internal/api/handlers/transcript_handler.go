package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/services"
	"github.com/yoockh/bookwise/internal/utils"
)

type TranscriptHandler struct {
	svc services.TranscriptService
}

func NewTranscriptHandler(svc services.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{svc: svc}
}

type TranscriptItem struct {
	ID        string  `json:"id"`
	Role      string  `json:"role" binding:"required"` // customer|user|assistant|agent
	Message   string  `json:"message" binding:"required"`
	Timestamp float64 `json:"timestamp"`
}

type ProcessTranscriptionRequest struct {
	RoomID string         `json:"room_id" binding:"required"`
	Item   TranscriptItem `json:"item"`
}

func (h *TranscriptHandler) Process(c *gin.Context) {
	const op = "TranscriptHandler.Process"

	var req ProcessTranscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	role, ok := models.ParseRole(req.Item.Role)
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "role must be customer or assistant", nil))
		return
	}

	data, err := h.svc.Process(c.Request.Context(), req.RoomID, models.Utterance{
		UtteranceID: req.Item.ID,
		Role:        role,
		Text:        req.Item.Message,
		Timestamp:   req.Item.Timestamp,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *TranscriptHandler) Room(c *gin.Context) {
	data, err := h.svc.Room(c.Request.Context(), c.Param("room_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *TranscriptHandler) All(c *gin.Context) {
	rooms, err := h.svc.ListTranscripts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	total := 0
	for _, r := range rooms {
		total += len(r.Transcripts)
	}
	c.JSON(http.StatusOK, gin.H{
		"total_rooms":       len(rooms),
		"total_transcripts": total,
		"rooms":             rooms,
	})
}
