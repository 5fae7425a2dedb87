package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/akeeper/go-account-keeper/models"
	"github.com/jackc/pgerrcode"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. It handles account creation, lookup, and partial
// updates against the "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount persists a new account record and returns the fully populated
// [models.Account] with server-assigned fields (AccountID, CreatedAt).
//
// The INSERT uses the [createAccount] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
//   - Scan failure → wrapped as [ErrScanningRow].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAccount,
		account.Email, account.PasswordHash, account.Subscription, account.AvatarURL, account.VerificationToken)

	var created models.Account
	if err := scanAccount(row, &created); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: account insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Account{}, ErrEmailAlreadyExists
		case "":
			if errors.Is(err, ErrScanningRow) {
				return models.Account{}, err
			}
			return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		default:
			return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return created, nil
}

// FindAccountByEmail retrieves the account whose email matches exactly.
// Email matching is byte-exact; no case normalization is applied.
//
// Error handling:
//   - No matching row → [ErrAccountNotFound].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findAccount(ctx, findAccountByEmail, email)
}

// FindAccountByID retrieves the account with the given internal identifier.
//
// Error handling mirrors [accountRepository.FindAccountByEmail].
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID int64) (models.Account, error) {
	return r.findAccount(ctx, findAccountByID, accountID)
}

// FindAccountByVerificationToken retrieves the account holding the given
// one-time email verification token.
//
// Error handling mirrors [accountRepository.FindAccountByEmail].
func (r *accountRepository) FindAccountByVerificationToken(ctx context.Context, token string) (models.Account, error) {
	return r.findAccount(ctx, findAccountByVerificationToken, token)
}

// UpdateAccount applies a partial update to the account identified by
// accountID and returns the full updated row. Only non-nil fields of the
// update are written. An empty update degrades to a plain lookup.
//
// Error handling:
//   - Account does not exist → [ErrAccountNotFound].
//   - Query construction failure → wrapped [ErrBuildingSQLQuery].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *accountRepository) UpdateAccount(ctx context.Context, accountID int64, update models.AccountUpdate) (models.Account, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return r.FindAccountByID(ctx, accountID)
	}

	query, args, err := buildUpdateAccountQuery(accountID, update)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateAccount").Msg("error: building update query")
		return models.Account{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	var updated models.Account
	if err := scanAccount(row, &updated); err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateAccount").Msg("error: account update failed")

		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		if errors.Is(err, ErrScanningRow) {
			return models.Account{}, err
		}
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// findAccount runs a single-row account lookup query with one argument and
// maps the result to a [models.Account].
func (r *accountRepository) findAccount(ctx context.Context, query string, arg any) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)

	var found models.Account
	if err := scanAccount(row, &found); err != nil {
		log.Err(err).Str("func", "*accountRepository.findAccount").Msg("error: account lookup failed")

		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		if errors.Is(err, ErrScanningRow) {
			return models.Account{}, err
		}
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// scanAccount scans a full accounts row in [accountColumns] order.
func scanAccount(row *sql.Row, dst *models.Account) error {
	if err := row.Err(); err != nil {
		return err
	}

	if err := row.Scan(
		&dst.AccountID,
		&dst.Email,
		&dst.PasswordHash,
		&dst.Subscription,
		&dst.AvatarURL,
		&dst.SessionToken,
		&dst.VerificationToken,
		&dst.Verified,
		&dst.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return nil
}
