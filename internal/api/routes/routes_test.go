package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/bookwise/internal/api/handlers"
	"github.com/yoockh/bookwise/internal/auth"
	"github.com/yoockh/bookwise/internal/repositories/memory"
	"github.com/yoockh/bookwise/internal/services"
)

func newEngine(issuer *auth.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	transcripts, orders := memory.NewTranscriptRepo(), memory.NewOrderRepo()
	feedback, admins := memory.NewFeedbackRepo(), memory.NewAdminRepo()
	room := services.RoomDeps{Transcripts: transcripts, Orders: orders, Logger: log}

	r := gin.New()
	RegisterRoutes(r, Deps{
		Issuer:     issuer,
		Health:     handlers.NewHealthHandler(handlers.HealthInfo{Database: "memory", Cache: "memory"}),
		Token:      handlers.NewTokenHandler("", ""),
		Transcript: handlers.NewTranscriptHandler(services.NewTranscriptService(room)),
		Order:      handlers.NewOrderHandler(services.NewOrderService(room)),
		Feedback:   handlers.NewFeedbackHandler(services.NewFeedbackService(feedback)),
		Admin:      handlers.NewAdminHandler(services.NewAdminService(services.AdminDeps{Admins: admins, Issuer: issuer, Logger: log})),
		Export: handlers.NewExportHandler(services.NewExportService(services.ExportDeps{
			Transcripts: transcripts, Orders: orders, Feedback: feedback, Admins: admins, Logger: log,
		})),
	})
	return r
}

func get(r http.Handler, path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestStaffRoutesRequireAdminToken(t *testing.T) {
	issuer := auth.NewIssuer("s3cret", "bookwise", time.Hour)
	r := newEngine(issuer)

	token, err := issuer.AdminToken("admin-1")
	require.NoError(t, err)

	for _, path := range []string{
		"/transcripts/all",
		"/orders/all",
		"/feedback/all",
		"/api/admin/list",
		"/export/data",
	} {
		assert.Equal(t, http.StatusUnauthorized, get(r, path, ""), path)
		assert.Equal(t, http.StatusOK, get(r, path, token), path)
	}
}

func TestPublicRoutes(t *testing.T) {
	r := newEngine(auth.NewIssuer("s3cret", "bookwise", time.Hour))

	assert.Equal(t, http.StatusOK, get(r, "/ping", ""))
	assert.Equal(t, http.StatusOK, get(r, "/health", ""))
	assert.Equal(t, http.StatusNotFound, get(r, "/rooms/unknown", ""))
	assert.Equal(t, http.StatusNotFound, get(r, "/ws/rooms/unknown", ""))
}
