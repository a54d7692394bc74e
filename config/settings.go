package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/models"
)

// Settings is the process configuration read from the environment.
type Settings struct {
	Port    string
	Version string

	MongoURI    string
	MongoDB     string
	PostgresURI string
	RedisAddr   string

	// MongoTLS12 pins TLS 1.2 for Atlas clusters that reject the Go 1.24
	// defaults on some tiers.
	MongoTLS12       bool
	MongoInsecureTLS bool

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
	VerifyTTL time.Duration

	LiveKitAPIKey    string
	LiveKitAPISecret string

	SMTP          SMTPSettings
	AdminEmail    string
	ApproverEmail string
	PublicBaseURL string

	GCSBucket   string
	GCPProject  string
	GCPLocation string
	GeminiModel string

	UnitPrice    float64
	Currency     string
	AudioWorkers int
	BufferTTL    time.Duration
	RoomCacheTTL time.Duration
}

type SMTPSettings struct {
	Server   string
	Port     int
	Username string
	Password string
}

func (s SMTPSettings) Configured() bool {
	return s.Username != "" && s.Password != ""
}

func Load() Settings {
	s := Settings{
		Port:    env("PORT", "8000"),
		Version: env("APP_VERSION", "1.0.0"),

		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     env("MONGO_DB", "bookwise"),
		PostgresURI: os.Getenv("POSTGRES_URI"),
		RedisAddr:   firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),

		MongoTLS12:       os.Getenv("MONGO_FORCE_TLS_CONFIG") == "true",
		MongoInsecureTLS: os.Getenv("MONGO_INSECURE_TLS") == "true",

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: env("JWT_ISSUER", "bookwise"),
		JWTTTL:    envDuration("JWT_TTL", 24*time.Hour),
		VerifyTTL: envDuration("VERIFY_TTL", 24*time.Hour),

		LiveKitAPIKey:    os.Getenv("LIVEKIT_API_KEY"),
		LiveKitAPISecret: os.Getenv("LIVEKIT_API_SECRET"),

		SMTP: SMTPSettings{
			Server:   env("SMTP_SERVER", "smtp.gmail.com"),
			Port:     envInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		ApproverEmail: os.Getenv("APPROVER_EMAIL"),
		PublicBaseURL: strings.TrimRight(env("PUBLIC_BASE_URL", "http://localhost:8000"), "/"),

		GCSBucket:   os.Getenv("GCS_BUCKET"),
		GCPProject:  os.Getenv("GCP_PROJECT"),
		GCPLocation: env("GCP_LOCATION", "us-central1"),
		GeminiModel: env("GEMINI_MODEL", "gemini-1.5-flash"),

		UnitPrice:    envFloat("UNIT_PRICE", extraction.DefaultUnitPrice),
		Currency:     env("CURRENCY", "USD"),
		AudioWorkers: envInt("AUDIO_WORKERS", 5),
		BufferTTL:    envDuration("BUFFER_TTL", 24*time.Hour),
		RoomCacheTTL: envDuration("ROOM_CACHE_TTL", 30*time.Second),
	}
	if s.ApproverEmail == "" {
		s.ApproverEmail = s.AdminEmail
	}
	return s
}

// Extraction is the engine configuration implied by these settings.
func (s Settings) Extraction() extraction.Config {
	cfg := extraction.DefaultConfig()
	if s.UnitPrice > 0 {
		cfg.UnitPrice = s.UnitPrice
	}
	cfg.DefaultDelivery = models.DeliveryHome
	return cfg
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f > 0 {
		return f
	}
	return def
}

// envDuration accepts Go durations ("90s") or plain seconds.
func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
