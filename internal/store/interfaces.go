package store

import (
	"context"

	"github.com/akeeper/go-account-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/account_repository_mock.go -package=mock

// AccountRepository provides persistence for user accounts.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
	FindAccountByID(ctx context.Context, accountID int64) (models.Account, error)
	FindAccountByVerificationToken(ctx context.Context, token string) (models.Account, error)
	UpdateAccount(ctx context.Context, accountID int64, update models.AccountUpdate) (models.Account, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
