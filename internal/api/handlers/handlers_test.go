package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/bookwise/internal/api/middleware"
	"github.com/yoockh/bookwise/internal/auth"
	"github.com/yoockh/bookwise/internal/cache"
	"github.com/yoockh/bookwise/internal/export"
	"github.com/yoockh/bookwise/internal/repositories/memory"
	"github.com/yoockh/bookwise/internal/services"
	"github.com/yoockh/bookwise/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	r      *gin.Engine
	issuer *auth.Issuer
}

func newTestServer() *testServer {
	log := logrus.New()
	log.SetOutput(io.Discard)

	transcripts := memory.NewTranscriptRepo()
	orders := memory.NewOrderRepo()
	feedback := memory.NewFeedbackRepo()
	admins := memory.NewAdminRepo()
	c := cache.NewMemoryCache()

	room := services.RoomDeps{
		Transcripts: transcripts,
		Orders:      orders,
		Events:      memory.NewOrderEventRepo(),
		Cache:       c,
		Publisher:   c,
		Locks:       services.NewRoomLocks(),
		Logger:      log,
	}
	issuer := auth.NewIssuer("test-secret", "bookwise", time.Hour)

	th := NewTranscriptHandler(services.NewTranscriptService(room))
	oh := NewOrderHandler(services.NewOrderService(room))
	fh := NewFeedbackHandler(services.NewFeedbackService(feedback))
	ah := NewAdminHandler(services.NewAdminService(services.AdminDeps{Admins: admins, Issuer: issuer, Logger: log}))
	eh := NewExportHandler(services.NewExportService(services.ExportDeps{
		Transcripts: transcripts, Orders: orders, Feedback: feedback, Admins: admins, Logger: log,
	}))

	r := gin.New()
	r.POST("/process-transcription", th.Process)
	r.GET("/rooms/:room_id", th.Room)
	r.GET("/transcripts/all", th.All)
	r.POST("/orders/submit", oh.Submit)
	r.GET("/orders/all", oh.All)
	r.GET("/rooms/:room_id/events", oh.Events)
	r.POST("/feedback", fh.Create)
	r.GET("/feedback/room/:room_id", fh.ByRoom)
	r.POST("/api/auth/admin/register", ah.Register)
	r.GET("/api/auth/admin/verify-email", ah.VerifyEmail)
	r.POST("/api/auth/login", ah.Login)
	r.GET("/api/auth/me", middleware.JWTAuth(issuer), ah.Me)
	r.GET("/api/admin/export-admins", eh.Admins)
	r.GET("/export/data", eh.Data)

	return &testServer{r: r, issuer: issuer}
}

func (s *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func say(s *testServer, room, id, role, msg string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/process-transcription", gin.H{
		"room_id": room,
		"item":    gin.H{"id": id, "role": role, "message": msg, "timestamp": 1000},
	}, "")
}

var turns = [][2]string{
	{"assistant", "Hello! Welcome to BookWise. How can I help you today?"},
	{"customer", "Hi, my name is Priya Sharma."},
	{"assistant", "Nice to meet you. Could you share your phone number?"},
	{"customer", "Sure, my phone number is 98765-43210."},
	{"assistant", "Which book would you like?"},
	{"customer", `I'm looking for "The Midnight Library" by Matt Haig, two copies please.`},
	{"assistant", "Great choice, a lovely fiction novel. How would you like to pay?"},
	{"customer", "I'll pay by UPI."},
	{"assistant", "Should we deliver the book, or will you visit the store?"},
	{"customer", "Home delivery please. My address is 221B Baker Street, London."},
}

func TestProcessTranscription(t *testing.T) {
	s := newTestServer()

	w := say(s, "room-1", "u1", "customer", "Hi, my name is Priya Sharma.")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "room-1", body["room_id"])
	order := body["order"].(map[string]any)
	assert.Equal(t, "Priya Sharma", order["customer_name"])
	assert.Equal(t, "pending", order["order_status"])
	assert.Equal(t, "collecting", body["readiness"].(map[string]any)["state"])

	t.Run("unknown role", func(t *testing.T) {
		w := say(s, "room-1", "u2", "narrator", "hello")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(utils.CodeInvalidArgument), decode(t, w)["code"])
	})

	t.Run("missing room", func(t *testing.T) {
		w := s.do(http.MethodPost, "/process-transcription", gin.H{"item": gin.H{"role": "user", "message": "hi"}}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRoomAndTranscripts(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodGet, "/rooms/nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusOK, say(s, "room-a", "a1", "user", "Hi, my name is Priya Sharma.").Code)
	require.Equal(t, http.StatusOK, say(s, "room-b", "b1", "user", "I'll pay by UPI.").Code)
	require.Equal(t, http.StatusOK, say(s, "room-b", "b2", "assistant", "Thank you.").Code)

	w = s.do(http.MethodGet, "/rooms/room-a", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["transcripts"], 1)

	w = s.do(http.MethodGet, "/transcripts/all", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 2, body["total_rooms"])
	assert.EqualValues(t, 3, body["total_transcripts"])
}

func TestSubmitOrder(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodPost, "/orders/submit", gin.H{"room_id": "empty"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	for i, turn := range turns[:4] {
		require.Equal(t, http.StatusOK, say(s, "room-1", fmt.Sprintf("u%d", i), turn[0], turn[1]).Code)
	}

	w = s.do(http.MethodPost, "/orders/submit", gin.H{"room_id": "room-1"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["message"], "book_title")

	for i, turn := range turns[4:] {
		require.Equal(t, http.StatusOK, say(s, "room-1", fmt.Sprintf("u%d", i+4), turn[0], turn[1]).Code)
	}

	w = s.do(http.MethodPost, "/orders/submit", gin.H{"room_id": "room-1"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["order_id"])
	data := body["order_data"].(map[string]any)
	assert.Equal(t, "The Midnight Library", data["book_title"])
	assert.EqualValues(t, 2, data["quantity"])
	assert.Equal(t, "confirmed", data["order_status"])

	t.Run("resubmit conflicts", func(t *testing.T) {
		w := s.do(http.MethodPost, "/orders/submit", gin.H{"room_id": "room-1"}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("listed", func(t *testing.T) {
		w := s.do(http.MethodGet, "/orders/all", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, decode(t, w)["total_orders"])
	})

	t.Run("events", func(t *testing.T) {
		w := s.do(http.MethodGet, "/rooms/room-1/events?limit=100", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		events := decode(t, w)["events"].([]any)
		assert.NotEmpty(t, events)
	})
}

func TestSubmitEditedOrder(t *testing.T) {
	s := newTestServer()

	qty := 1
	w := s.do(http.MethodPost, "/orders/submit", gin.H{
		"room_id": "room-9",
		"order_data": gin.H{
			"customer_name":   "Ravi Kumar",
			"customer_id":     "+91 98765 43210",
			"book_title":      "Atomic Habits",
			"quantity":        qty,
			"payment_method":  "Cash on Delivery",
			"delivery_option": "store_pickup",
		},
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["order_data"].(map[string]any)
	assert.Equal(t, "room-9", data["room_id"])
	assert.NotEmpty(t, data["order_id"])
}

func TestFeedback(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodPost, "/feedback", gin.H{"room_id": "room-1", "rating": 5, "feedback_text": "Quick and friendly"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/feedback", gin.H{"room_id": "room-1", "rating": 9}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/feedback/room/room-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/feedback/room/other", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminLifecycle(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodPost, "/api/auth/admin/register", gin.H{
		"name": "Asha Rao", "email": "Asha@BookWise.test", "password": "correct-horse", "department": "Sales",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode(t, w)
	assert.Equal(t, "asha@bookwise.test", reg["email"])
	assert.Equal(t, "pending_verification", reg["status"])
	token, _ := reg["verification_token"].(string)
	require.NotEmpty(t, token)

	w = s.do(http.MethodPost, "/api/auth/admin/register", gin.H{
		"name": "Asha Rao", "email": "asha@bookwise.test", "password": "correct-horse",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/auth/admin/verify-email?token=nope", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/auth/admin/verify-email?token="+token, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	verified := decode(t, w)
	assert.Equal(t, "active", verified["status"])
	emp, _ := verified["employee_id"].(string)
	require.NotEmpty(t, emp)

	w = s.do(http.MethodPost, "/api/auth/login", gin.H{"employee_id": emp, "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", gin.H{"employee_id": emp, "password": "correct-horse"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode(t, w)
	assert.Equal(t, "bearer", login["token_type"])
	access, _ := login["access_token"].(string)
	require.NotEmpty(t, access)

	w = s.do(http.MethodGet, "/api/auth/me", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asha Rao", decode(t, w)["name"])

	w = s.do(http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExports(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodGet, "/api/admin/export-admins", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "admin_accounts_")
	assert.Empty(t, w.Header().Get("X-Export-URL"))
	assert.NotZero(t, w.Body.Len())

	w = s.do(http.MethodGet, "/export/data", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Contains(t, body, "export_timestamp")
	assert.Contains(t, body, "metadata")
}

func TestTokenHandler(t *testing.T) {
	r := gin.New()
	r.POST("/off", NewTokenHandler("", "").Create)
	on := NewTokenHandler("APIkey", "secret")
	on.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	r.POST("/on", on.Create)

	post := func(path string, body any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusServiceUnavailable, post("/off", gin.H{"room_name": "r", "identity": "i"}).Code)
	assert.Equal(t, http.StatusBadRequest, post("/on", gin.H{"room_name": "r"}).Code)

	w := post("/on", gin.H{"room_name": "room-1", "identity": "customer-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["access_token"])
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler(HealthInfo{Version: "1.0.0", Database: "memory", Cache: "memory"})
	r := gin.New()
	r.GET("/health", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	svc := body["services"].(map[string]any)
	assert.Equal(t, "not_configured", svc["email"])
	assert.Equal(t, "unavailable", svc["speech"])
}

func TestRoomWSRequiresRedis(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := NewWSHandler(nil, nil, nil, log)

	r := gin.New()
	r.GET("/ws/rooms/:room_id", h.RoomWS)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/rooms/room-1", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
