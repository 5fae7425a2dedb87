package handler

import (
	"github.com/akeeper/go-account-keeper/internal/avatar"
	"github.com/akeeper/go-account-keeper/internal/config"
	"github.com/akeeper/go-account-keeper/internal/handler/http"
	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/akeeper/go-account-keeper/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, avatarFiles avatar.FileStore, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, avatarFiles, logger),
	}, nil
}
