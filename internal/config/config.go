package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Env                string
	StoreDriver        string
	MongoURI           string
	MongoDB            string
	ServerAddr         string
	APIBasePath        string
	FrontendOrigins    []string
	RateLimitBookings  int
	RateLimitWindowSec int
	RedisURL           string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	AdminAPIKey        string
	AdminUser          string
	AdminPassword      string
	JWTSecret          string
	AccessTTLMinutes   int
	RefreshTTLMinutes  int
	CookieSecure       bool
	MetricsEnabled     bool
	LogLevel           slog.Level
	Timezone           *time.Location
}

// IsDevelopment reports whether startup failures should stop the process.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("TZ", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017/bookinub")
	mongoDB := getEnv("MONGO_DB", "")
	if mongoDB == "" {
		mongoDB = mongoDBFromURI(mongoURI)
	}
	if mongoDB == "" {
		mongoDB = "bookinub"
	}

	storeDriver := strings.ToLower(getEnv("STORE_DRIVER", StoreMongo))
	if storeDriver != StoreMongo && storeDriver != StoreMemory {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", storeDriver)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	serverAddr := getEnv("SERVER_ADDR", "")
	if serverAddr == "" {
		serverAddr = ":" + strconv.Itoa(getEnvInt("PORT", 5000))
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", getEnv("NODE_ENV", EnvProduction)),
		StoreDriver:        storeDriver,
		MongoURI:           mongoURI,
		MongoDB:            mongoDB,
		ServerAddr:         serverAddr,
		APIBasePath:        normalizeBasePath(getEnv("API_BASE_PATH", "/api")),
		FrontendOrigins:    splitList(getEnv("FRONTEND_ORIGINS", "*")),
		RateLimitBookings:  getEnvInt("RATE_LIMIT_BOOKINGS", 20),
		RateLimitWindowSec: getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		AdminAPIKey:        getEnv("ADMIN_API_KEY", ""),
		AdminUser:          getEnv("ADMIN_USER", "admin"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AccessTTLMinutes:   getEnvInt("ACCESS_TTL_MINUTES", 15),
		RefreshTTLMinutes:  getEnvInt("REFRESH_TTL_MINUTES", 43200),
		CookieSecure:       getEnvBool("COOKIE_SECURE", false),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		LogLevel:           level,
		Timezone:           loc,
	}

	return cfg, nil
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// only the first path segment names the database
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = "/" + strings.Trim(p, "/")
	return p
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}
