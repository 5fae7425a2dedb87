package service

import (
	"context"
	"io"

	"github.com/akeeper/go-account-keeper/models"
)

// AccountService manages the full account lifecycle: registration, session
// handling, subscription and avatar updates, and email verification.
type AccountService interface {
	// SignUp registers a new account from the given credentials, assigns a
	// gravatar placeholder avatar, and dispatches a verification email.
	// Mail dispatch is best-effort: a relay failure is logged and the signup
	// still succeeds.
	SignUp(ctx context.Context, credentials models.Credentials) (models.Account, error)

	// Login authenticates the credentials, issues a fresh bearer token, and
	// persists it as the account's single active session.
	Login(ctx context.Context, credentials models.Credentials) (models.Account, models.Token, error)

	// Logout clears the account's active session token. Calling it for an
	// already logged-out account is not an error.
	Logout(ctx context.Context, accountID int64) error

	// Authenticate resolves a raw bearer token to the account it belongs to.
	// Tokens that are expired, malformed, or no longer the account's current
	// session are rejected with ErrTokenIsExpiredOrInvalid.
	Authenticate(ctx context.Context, tokenString string) (models.Account, error)

	// UpdateSubscription switches the account to one of the known
	// subscription tiers.
	UpdateSubscription(ctx context.Context, accountID int64, subscription string) (models.Account, error)

	// UpdateAvatar normalizes the uploaded image, stores it under a stable
	// per-account file name, and points the account's avatar URL at it.
	UpdateAvatar(ctx context.Context, accountID int64, fileName string, upload io.Reader) (models.Account, error)

	// VerifyEmail consumes a one-time verification token and marks the
	// owning account as verified.
	VerifyEmail(ctx context.Context, verificationToken string) error

	// ResendVerification re-dispatches the verification email for an
	// unverified account, reusing the existing token.
	ResendVerification(ctx context.Context, email string) error
}
