package store

import (
	"context"

	"github.com/akeeper/go-account-keeper/internal/config"
	"github.com/akeeper/go-account-keeper/internal/logger"
)

// Storages aggregates all repository implementations behind their interfaces.
type Storages struct {
	AccountRepository AccountRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, err
	}

	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
	}, nil
}
