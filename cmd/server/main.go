package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/AngelCh415/ADMARGIN_GO/internal/config"
	"github.com/AngelCh415/ADMARGIN_GO/internal/httpx"
	"github.com/AngelCh415/ADMARGIN_GO/internal/report"
)

func main() {
	_ = godotenv.Load() // .env opcional
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	svc := report.NewService(logger)
	r := httpx.NewRouter(logger, svc, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
