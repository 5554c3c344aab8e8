package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Builder-Lawyers/site-builder/pkg/env"
)

type ServerConfig struct {
	Port            string
	AllowOrigins    string
	BodyLimit       int
	ShutdownTimeout time.Duration
	PollerEnabled   bool
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            env.GetEnv("PORT", "8080"),
		AllowOrigins:    env.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
		BodyLimit:       env.GetEnvInt("BODY_LIMIT_BYTES", 8*1024*1024),
		ShutdownTimeout: env.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		PollerEnabled:   env.GetEnvBool("POLLER_ENABLED", true),
	}
}

type LogConfig struct {
	Format string
	Level  slog.Level
}

func NewLogConfig() *LogConfig {
	var level slog.Level
	if err := level.UnmarshalText([]byte(env.GetEnv("LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}
	return &LogConfig{
		Format: strings.ToLower(env.GetEnv("LOG_FORMAT", "json")),
		Level:  level,
	}
}

// NewLogger builds the process logger: JSON unless LOG_FORMAT=text.
func NewLogger(cfg *LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
