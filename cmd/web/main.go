package main

import (
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/config"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/gateway/paystack"
	apphttp "github.com/olabanji12-ojo/lifestyles-sub000/internal/http"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	gw := paystack.NewClient(cfg.PaystackSecretKey)

	r := apphttp.NewRouter(logger, db, gw, cfg)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
