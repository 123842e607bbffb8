package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KrisDawg/family-sync/internal/client"
	"github.com/KrisDawg/family-sync/internal/config"
	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// the logger must exist before the config is loaded (config errors
	// need somewhere to go), so this one knob is read straight from the
	// environment
	newLogger := logger.NewLogger
	if os.Getenv("FAMILY_SYNC_LOG_FILE") != "" {
		newLogger = logger.NewFileLogger
	}
	log := newLogger("family-sync-client")

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	app, err := client.NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
