package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/internal/cache"
	"github.com/yoockh/bookwise/internal/services"
	"github.com/yoockh/bookwise/internal/utils"
	"github.com/yoockh/bookwise/internal/workers"
)

// WSHandler bridges a room's voice client to the audio stream and relays the
// room's order, status and response channels back to it.
type WSHandler struct {
	rooms    services.TranscriptService
	buffers  services.BufferService
	redis    *redis.Client
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(rooms services.TranscriptService, buffers services.BufferService, rdb *redis.Client, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		rooms:   rooms,
		buffers: buffers,
		redis:   rdb,
		log:     log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type wsClientMsg struct {
	Type        string `json:"type"`
	ChunkIndex  int64  `json:"chunk_index"`
	Language    string `json:"language"`
	AudioBase64 string `json:"audio_base64"`
	AudioURL    string `json:"audio_url"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.writeText(b)
}

func (w *wsConn) writeError(code utils.Code, msg string) {
	_ = w.writeJSON(gin.H{"type": "error", "code": code, "message": msg})
}

func (h *WSHandler) RoomWS(c *gin.Context) {
	const op = "WSHandler.RoomWS"

	roomID := c.Param("room_id")
	if roomID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing room_id", nil))
		return
	}
	if h.redis == nil {
		writeError(c, utils.E(utils.CodeUnavailable, op, "realtime channel requires redis", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	log := h.log.WithField("room_id", roomID)
	statusCh := cache.StatusChannel(roomID)

	pubsub := h.redis.Subscribe(ctx, cache.OrderChannel(roomID), statusCh, cache.ResponseChannel(roomID))
	defer pubsub.Close()

	// A reconnecting client gets the current order straight away.
	if room, err := h.rooms.Room(ctx, roomID); err == nil {
		_ = wc.writeJSON(services.OrderUpdate{
			Type:      "snapshot",
			RoomID:    roomID,
			Order:     room.Order,
			Readiness: room.Readiness,
		})
	}

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				wc.writeError(utils.CodeInvalidArgument, "invalid json")
				continue
			}

			switch msg.Type {
			case "audio_chunk":
				h.enqueue(ctx, wc, log, roomID, msg)
			case "ping":
				_ = wc.writeJSON(gin.H{"type": "pong"})
			default:
				wc.writeError(utils.CodeInvalidArgument, "unknown message type")
			}
		}
	}()

	msgs := pubsub.Channel()
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case m, ok := <-msgs:
			if !ok {
				return
			}
			if werr := wc.writeText([]byte(m.Payload)); werr != nil {
				return
			}
		}
	}
}

func (h *WSHandler) enqueue(ctx context.Context, wc *wsConn, log *logrus.Entry, roomID string, msg wsClientMsg) {
	var audioURL, audioBase64 *string
	if msg.AudioURL != "" {
		audioURL = &msg.AudioURL
	}
	if msg.AudioBase64 != "" {
		audioBase64 = &msg.AudioBase64
	}

	if _, err := h.buffers.InsertAudioChunk(ctx, roomID, msg.ChunkIndex, audioURL, audioBase64); err != nil {
		var ae *utils.AppError
		if errors.As(err, &ae) {
			wc.writeError(ae.Code, ae.Message)
		} else {
			wc.writeError(utils.CodeInternal, "failed to buffer audio")
		}
		return
	}

	chunk := workers.Chunk{
		RoomID:      roomID,
		ChunkIndex:  msg.ChunkIndex,
		Language:    msg.Language,
		AudioBase64: msg.AudioBase64,
		AudioURL:    msg.AudioURL,
	}
	if err := h.redis.XAdd(ctx, &redis.XAddArgs{Stream: workers.DefaultStream, Values: chunk.Values()}).Err(); err != nil {
		log.WithError(err).WithField("chunk_index", msg.ChunkIndex).Error("enqueue audio failed")
		wc.writeError(utils.CodeUnavailable, "failed to enqueue audio")
		return
	}

	b, _ := json.Marshal(gin.H{
		"type":        "status",
		"status":      "processing",
		"message":     "audio chunk queued",
		"chunk_index": msg.ChunkIndex,
	})
	_ = h.redis.Publish(ctx, cache.StatusChannel(roomID), b).Err()
}
