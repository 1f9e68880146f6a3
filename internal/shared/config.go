package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"skate_admin/internal/domain"
)

type Config struct {
	AppEnv        string
	LogLevel      string
	APIBase       string
	APIRPS        int
	APITimeout    time.Duration
	GetRetries    int
	HTTPAddr      string
	ServerTimeout time.Duration
	PublicURL     string
	MetricsAddr   string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	PreviewTTL    time.Duration
	UploadedBy    int64
	MaxPhotos     int
	Photo         domain.PhotoConstraints
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric value")
		}
		return def
	}
	photo := domain.DefaultPhotoConstraints()
	photo.MaxSizeMB = float64(atoi("PHOTO_MAX_SIZE_MB", int(photo.MaxSizeMB)))
	photo.MinWidth = atoi("PHOTO_MIN_WIDTH", photo.MinWidth)
	photo.MinHeight = atoi("PHOTO_MIN_HEIGHT", photo.MinHeight)

	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		APIBase:       env("API_BASE_URL", "http://localhost:8080/api"),
		APIRPS:        atoi("API_RPS", 10),
		APITimeout:    time.Duration(atoi("API_TIMEOUT_SECONDS", 0)) * time.Second,
		GetRetries:    atoi("API_GET_RETRIES", 0),
		HTTPAddr:      env("HTTP_ADDR", "127.0.0.1:8090"),
		ServerTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		MetricsAddr:   env("METRICS_ADDR", ""),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		PreviewTTL:    time.Duration(atoi("PREVIEW_TTL_SECONDS", 3600)) * time.Second,
		UploadedBy:    int64(atoi("UPLOADED_BY", 1)),
		MaxPhotos:     atoi("PHOTO_MAX_COUNT", 20),
		Photo:         photo,
	}
	c.PublicURL = env("PUBLIC_URL", "http://"+c.HTTPAddr)
	if c.GetRetries < 0 {
		c.GetRetries = 0
	}
	if c.RedisAddr == "" {
		log.Debug().Msg("REDIS_ADDR is empty; previews stay in memory")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
