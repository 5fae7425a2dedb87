package store

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/akeeper/go-account-keeper/models"
)

// accountColumns is the canonical column list scanned into [models.Account].
const accountColumns = `account_id, email, password_hash, subscription, avatar_url, session_token, verification_token, verified, created_at`

const (
	createAccount = `INSERT INTO accounts (email, password_hash, subscription, avatar_url, verification_token)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + accountColumns + `;`

	findAccountByEmail = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE email = $1;`

	findAccountByID = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE account_id = $1;`

	findAccountByVerificationToken = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE verification_token = $1;`
)

// buildUpdateAccountQuery dynamically builds a partial UPDATE query that sets
// only the fields present in the update and returns the full updated row.
func buildUpdateAccountQuery(accountID int64, update models.AccountUpdate) (string, []any, error) {
	builder := squirrel.
		Update(models.Account{}.TableName()).
		Where(squirrel.Eq{"account_id": accountID}).
		Suffix("RETURNING " + accountColumns).
		PlaceholderFormat(squirrel.Dollar)

	if update.Subscription != nil {
		builder = builder.Set("subscription", *update.Subscription)
	}

	if update.AvatarURL != nil {
		builder = builder.Set("avatar_url", *update.AvatarURL)
	}

	if update.SessionToken != nil {
		builder = builder.Set("session_token", *update.SessionToken)
	}

	if update.VerificationToken != nil {
		builder = builder.Set("verification_token", *update.VerificationToken)
	}

	if update.Verified != nil {
		builder = builder.Set("verified", *update.Verified)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
