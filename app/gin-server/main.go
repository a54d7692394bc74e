package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/config"
	"github.com/yoockh/bookwise/internal/api/handlers"
	"github.com/yoockh/bookwise/internal/api/middleware"
	"github.com/yoockh/bookwise/internal/api/routes"
	"github.com/yoockh/bookwise/internal/auth"
	"github.com/yoockh/bookwise/internal/cache"
	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/logger"
	"github.com/yoockh/bookwise/internal/notify"
	"github.com/yoockh/bookwise/internal/providers/llm"
	"github.com/yoockh/bookwise/internal/providers/stt"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/repositories/memory"
	mongorepo "github.com/yoockh/bookwise/internal/repositories/mongo"
	pgrepo "github.com/yoockh/bookwise/internal/repositories/postgres"
	"github.com/yoockh/bookwise/internal/services"
	"github.com/yoockh/bookwise/internal/storage"
	"github.com/yoockh/bookwise/internal/workers"
)

type stores struct {
	transcripts repositories.TranscriptRepository
	orders      repositories.OrderRepository
	feedback    repositories.FeedbackRepository
	buffers     repositories.BufferRepository
	admins      repositories.AdminRepository
	events      repositories.OrderEventRepository

	database string
}

// openStores connects Mongo for conversation data and Postgres for accounts,
// falling back to process memory for whichever is not configured.
func openStores(s config.Settings, log *logrus.Logger) stores {
	st := stores{database: "memory"}

	if err := config.InitMongo(s); err != nil {
		log.WithError(err).Warn("mongodb unavailable, using in-memory conversation store")
		st.transcripts = memory.NewTranscriptRepo()
		st.orders = memory.NewOrderRepo()
		st.feedback = memory.NewFeedbackRepo()
		st.buffers = memory.NewBufferRepo()
	} else {
		db := config.MongoDatabase(s)
		if err := config.EnsureMongoIndexes(db); err != nil {
			log.WithError(err).Warn("mongodb index setup failed")
		}
		st.transcripts = mongorepo.NewTranscriptRepo(db)
		st.orders = mongorepo.NewOrderRepo(db)
		st.feedback = mongorepo.NewFeedbackRepo(db)
		st.buffers = mongorepo.NewBufferRepo(db)
		st.database = "mongodb"
		log.Info("MongoDB connected")
	}

	if err := config.InitPostgres(s); err != nil {
		log.WithError(err).Warn("postgres unavailable, using in-memory admin store")
		st.admins = memory.NewAdminRepo()
		st.events = memory.NewOrderEventRepo()
		return st
	}
	if err := config.MigratePostgres(config.PostgresDB); err != nil {
		log.WithError(err).Fatal("postgres migration failed")
	}
	st.admins = pgrepo.NewAdminRepo(config.PostgresDB)
	st.events = pgrepo.NewOrderEventRepo(config.PostgresDB)
	log.Info("PostgreSQL connected")
	return st
}

func main() {
	_ = godotenv.Load()

	log := logger.New()
	settings := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := openStores(settings, log)

	var (
		roomCache cache.Cache
		publisher cache.Publisher
		cacheName = "memory"
	)
	if err := config.InitRedis(settings); err != nil {
		log.WithError(err).Warn("redis unavailable, realtime audio disabled")
		mc := cache.NewMemoryCache()
		roomCache, publisher = mc, mc
	} else {
		rc := cache.NewRedisCache(config.RedisClient)
		roomCache, publisher = rc, rc
		cacheName = "redis"
		log.Info("Redis connected")
	}

	notifier := notify.NewSMTPNotifier(notify.SMTPConfig{
		Server:     settings.SMTP.Server,
		Port:       settings.SMTP.Port,
		Username:   settings.SMTP.Username,
		Password:   settings.SMTP.Password,
		OrdersTo:   settings.AdminEmail,
		ApproverTo: settings.ApproverEmail,
		Currency:   settings.Currency,
	}, log)
	if !notifier.Enabled() {
		log.Warn("SMTP not configured, e-mail notifications disabled")
	}

	var archive storage.Archive
	if settings.GCSBucket != "" {
		gcs, err := storage.NewGCSArchive(ctx, settings.GCSBucket)
		if err != nil {
			log.WithError(err).Warn("gcs unavailable, exports will not be archived")
		} else {
			defer gcs.Close()
			archive = gcs
		}
	}

	issuer := auth.NewIssuer(settings.JWTSecret, settings.JWTIssuer, settings.JWTTTL)
	if settings.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, staff endpoints will reject every request")
	}

	room := services.RoomDeps{
		Transcripts: st.transcripts,
		Orders:      st.orders,
		Events:      st.events,
		Extractor:   extraction.New(settings.Extraction()),
		Notifier:    notifier,
		Cache:       roomCache,
		Publisher:   publisher,
		Locks:       services.NewRoomLocks(),
		Logger:      log,
		RoomTTL:     settings.RoomCacheTTL,
	}
	transcriptSvc := services.NewTranscriptService(room)
	orderSvc := services.NewOrderService(room)
	feedbackSvc := services.NewFeedbackService(st.feedback)
	bufferSvc := services.NewBufferService(st.buffers, settings.BufferTTL)
	adminSvc := services.NewAdminService(services.AdminDeps{
		Admins:    st.admins,
		Notifier:  notifier,
		Issuer:    issuer,
		Logger:    log,
		BaseURL:   settings.PublicBaseURL,
		VerifyTTL: settings.VerifyTTL,
	})
	exportSvc := services.NewExportService(services.ExportDeps{
		Transcripts: st.transcripts,
		Orders:      st.orders,
		Feedback:    st.feedback,
		Admins:      st.admins,
		Archive:     archive,
		Logger:      log,
		StorageType: st.database,
	})

	speech := startAudioWorkers(ctx, settings, log, publisher, bufferSvc, transcriptSvc)

	deps := routes.Deps{
		Issuer: issuer,
		Health: handlers.NewHealthHandler(handlers.HealthInfo{
			Version:  settings.Version,
			Database: st.database,
			Cache:    cacheName,
			Email:    notifier.Enabled(),
			Speech:   speech,
		}),
		Token:      handlers.NewTokenHandler(settings.LiveKitAPIKey, settings.LiveKitAPISecret),
		Transcript: handlers.NewTranscriptHandler(transcriptSvc),
		Order:      handlers.NewOrderHandler(orderSvc),
		Feedback:   handlers.NewFeedbackHandler(feedbackSvc),
		Admin:      handlers.NewAdminHandler(adminSvc),
		Export:     handlers.NewExportHandler(exportSvc),
	}
	if config.RedisClient != nil {
		deps.WS = handlers.NewWSHandler(transcriptSvc, bufferSvc, config.RedisClient, log)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log, "/health", "/ping"))
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{Addr: ":" + settings.Port, Handler: r}
	go func() {
		log.WithField("port", settings.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// startAudioWorkers runs the speech pipeline when redis and GCP are both
// configured, and reports whether it did.
func startAudioWorkers(ctx context.Context, s config.Settings, log *logrus.Logger, pub cache.Publisher, buffers services.BufferService, transcripts services.TranscriptService) bool {
	if config.RedisClient == nil || s.GCPProject == "" {
		return false
	}

	sttProvider, err := stt.NewGoogleSpeech(ctx)
	if err != nil {
		log.WithError(err).Warn("speech-to-text unavailable")
		return false
	}
	llmProvider, err := llm.NewVertexGemini(ctx, s.GCPProject, s.GCPLocation, s.GeminiModel)
	if err != nil {
		_ = sttProvider.Close()
		log.WithError(err).Warn("vertex gemini unavailable")
		return false
	}

	pool := &workers.AudioWorkerPool{
		Redis:       config.RedisClient,
		Publisher:   pub,
		Buffers:     buffers,
		Transcripts: transcripts,
		NumWorkers:  s.AudioWorkers,
		STT:         sttProvider,
		LLM:         llmProvider,
		Logger:      log,
	}
	if err := pool.Start(ctx); err != nil {
		_ = sttProvider.Close()
		_ = llmProvider.Close()
		log.WithError(err).Warn("audio workers not started")
		return false
	}

	go func() {
		<-ctx.Done()
		_ = sttProvider.Close()
		_ = llmProvider.Close()
	}()
	return true
}
