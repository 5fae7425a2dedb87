package main

import (
	"context"
	"fmt"

	"github.com/akeeper/go-account-keeper/internal/adapter"
	"github.com/akeeper/go-account-keeper/internal/avatar"
	"github.com/akeeper/go-account-keeper/internal/config"
	"github.com/akeeper/go-account-keeper/internal/handler"
	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/akeeper/go-account-keeper/internal/server"
	"github.com/akeeper/go-account-keeper/internal/service"
	"github.com/akeeper/go-account-keeper/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-account-keeper")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	mailer, err := adapter.NewMailRelayClient(cfg.Mailer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail relay client")
	}

	avatarFiles, err := avatar.NewFileStore(cfg.Storage.Files.AvatarDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating avatar file store")
	}

	services := service.NewServices(storages, mailer, avatar.NewNormalizer(log), avatarFiles, cfg, log)

	handlers, err := handler.NewHandlers(services, avatarFiles, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
