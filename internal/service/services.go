package service

import (
	"github.com/akeeper/go-account-keeper/internal/adapter"
	"github.com/akeeper/go-account-keeper/internal/avatar"
	"github.com/akeeper/go-account-keeper/internal/config"
	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/akeeper/go-account-keeper/internal/store"
)

type Services struct {
	AccountService AccountService
}

func NewServices(
	storages *store.Storages,
	mailer adapter.Mailer,
	normalizer avatar.Normalizer,
	avatarFiles avatar.FileStore,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	return &Services{
		AccountService: NewAccountService(
			storages.AccountRepository,
			mailer,
			normalizer,
			avatarFiles,
			cfg.App,
			cfg.Mailer,
			logger,
		),
	}
}
