package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/api"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/config"
	apphttp "github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	hc := &http.Client{Timeout: 10 * time.Second}
	auth := api.NewAuthClient(cfg.AuthServiceAddr, hc)
	orders := api.NewOrdersClient(cfg.OrderServiceAddr, hc)

	r := apphttp.NewRouter(logger, cfg, auth, orders)

	logger.Info("listening", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
