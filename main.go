// @title School Reports API
// @version 1.0
// @description Reports, statistics and printable documents for the school administration dashboard.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"log"

	"school_reports_backend/internal/app"
	"school_reports_backend/internal/config"
	"school_reports_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	migrate := flag.Bool("migrate", false, "create the replica tables too (development databases only)")
	watch := flag.Bool("watch", true, "reload config.yaml when it changes")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Migrate = *migrate

	application := app.NewApp(cfg)
	defer logger.Sync()

	if *watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		application.WatchConfig(ctx, *configDir)
	}

	application.Run()
}
