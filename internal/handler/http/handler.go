package http

import (
	"github.com/akeeper/go-account-keeper/internal/avatar"
	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/akeeper/go-account-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// avatarFiles owns the directory normalized avatars are served from
	// under the /avatars/ route.
	avatarFiles avatar.FileStore

	logger *logger.Logger
}

func NewHandler(services *service.Services, avatarFiles avatar.FileStore, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		avatarFiles: avatarFiles,
		logger:      logger,
	}
}
