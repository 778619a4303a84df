package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	LogLevel    slog.Level
	MaxUploadMB int64
}

func FromEnv() Config {
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	maxMB := int64(16)
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxMB = n
		}
	}
	return Config{
		Port:        envOr("PORT", "8080"),
		LogLevel:    lvl,
		MaxUploadMB: maxMB,
	}
}

func (c Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
