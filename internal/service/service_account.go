package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/akeeper/go-account-keeper/internal/adapter"
	"github.com/akeeper/go-account-keeper/internal/avatar"
	"github.com/akeeper/go-account-keeper/internal/config"
	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/akeeper/go-account-keeper/internal/store"
	"github.com/akeeper/go-account-keeper/internal/utils"
	"github.com/akeeper/go-account-keeper/models"
)

// emailPattern is a light shape check; email matching elsewhere stays
// byte-exact.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// accountService is the concrete implementation of AccountService.
// It handles account registration, credential verification, JWT session
// lifecycle, avatar management, and email verification using an
// AccountRepository for persistence and bcrypt for password hashing.
type accountService struct {
	// accountRepository is the data-access layer used to create, look up,
	// and update accounts.
	accountRepository store.AccountRepository

	// mailer dispatches verification emails through the configured relay.
	mailer adapter.Mailer

	// normalizer scales uploaded avatar images to the canonical dimensions.
	normalizer avatar.Normalizer

	// avatarFiles persists normalized avatars on disk.
	avatarFiles avatar.FileStore

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// verifyBaseURL is the externally reachable base URL embedded in
	// verification links.
	verifyBaseURL string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAccountService constructs an AccountService wired to the given
// repository, mailer, and avatar components, populated with security
// parameters from appCfg and mail parameters from mailerCfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(
	accountRepository store.AccountRepository,
	mailer adapter.Mailer,
	normalizer avatar.Normalizer,
	avatarFiles avatar.FileStore,
	appCfg config.App,
	mailerCfg config.Mailer,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		mailer:            mailer,
		normalizer:        normalizer,
		avatarFiles:       avatarFiles,
		tokenSignKey:      appCfg.TokenSignKey,
		tokenIssuer:       appCfg.TokenIssuer,
		tokenDuration:     appCfg.TokenDuration,
		verifyBaseURL:     strings.TrimRight(mailerCfg.VerifyBaseURL, "/"),
		logger:            logger,
	}
}

// SignUp registers a new account.
//
// It validates the email shape and a non-empty password, hashes the password
// with bcrypt, assigns a gravatar placeholder avatar and a fresh verification
// token, and delegates persistence to the AccountRepository. After the insert
// it dispatches the verification email; a relay failure is logged but does
// not fail the signup.
//
// Returns the persisted account (with a server-assigned AccountID) or:
//   - ErrInvalidDataProvided if the email or password fails validation.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *accountService) SignUp(ctx context.Context, credentials models.Credentials) (models.Account, error) {
	log := logger.FromContext(ctx)

	if !validEmail(credentials.Email) || credentials.Password == "" {
		log.Error().Str("email", credentials.Email).Msg("invalid signup data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(credentials.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Account{}, fmt.Errorf("password hashing failed: %w", err)
	}

	verificationToken, err := utils.NewVerificationToken()
	if err != nil {
		log.Err(err).Msg("verification token generation failed")
		return models.Account{}, fmt.Errorf("verification token generation failed: %w", err)
	}

	account := models.Account{
		Email:             credentials.Email,
		PasswordHash:      passwordHash,
		Subscription:      models.SubscriptionStarter,
		AvatarURL:         utils.GravatarURL(credentials.Email),
		VerificationToken: verificationToken,
	}

	created, err := a.accountRepository.CreateAccount(ctx, account)
	if err != nil {
		log.Err(err).Str("email", credentials.Email).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	// dispatch is best-effort on signup; the token can always be resent
	if err := a.sendVerificationMail(ctx, created); err != nil {
		log.Err(err).Int64("id", created.AccountID).Msg("verification mail dispatch failed on signup")
	}

	return created, nil
}

// Login authenticates an existing account.
//
// It looks up the account by email and compares the bcrypt digest with the
// supplied password. An unknown email and a wrong password both produce
// ErrInvalidCredentials so callers cannot probe which emails are registered.
// On success a fresh JWT is issued and persisted as the account's single
// active session token, replacing any previous session.
//
// Returns the updated account and the issued token, or:
//   - ErrInvalidDataProvided if the email or password is empty.
//   - ErrInvalidCredentials for unknown email or password mismatch.
//   - ErrTokenCreationFailed (wrapped) if JWT generation fails.
func (a *accountService) Login(ctx context.Context, credentials models.Credentials) (models.Account, models.Token, error) {
	log := logger.FromContext(ctx)

	if credentials.Email == "" || credentials.Password == "" {
		log.Error().Str("email", credentials.Email).Msg("invalid login data provided")
		return models.Account{}, models.Token{}, ErrInvalidDataProvided
	}

	found, err := a.accountRepository.FindAccountByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Error().Str("email", credentials.Email).Msg("login attempt for unknown email")
			return models.Account{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", credentials.Email).Msg("account search by email failed")
		return models.Account{}, models.Token{}, fmt.Errorf("account search by email failed: %w", err)
	}

	if !utils.CheckPassword(credentials.Password, found.PasswordHash) {
		log.Error().Int64("id", found.AccountID).Msg("wrong password")
		return models.Account{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := a.createToken(found)
	if err != nil {
		log.Err(err).Int64("id", found.AccountID).Msg("token creation failed")
		return models.Account{}, models.Token{}, err
	}

	updated, err := a.accountRepository.UpdateAccount(ctx, found.AccountID, models.AccountUpdate{
		SessionToken: &token.SignedString,
	})
	if err != nil {
		log.Err(err).Int64("id", found.AccountID).Msg("persisting session token failed")
		return models.Account{}, models.Token{}, fmt.Errorf("persisting session token failed: %w", err)
	}

	return updated, token, nil
}

// Logout clears the account's active session token, revoking the current
// bearer token. Logging out an already logged-out account is a no-op.
func (a *accountService) Logout(ctx context.Context, accountID int64) error {
	log := logger.FromContext(ctx)

	empty := ""
	if _, err := a.accountRepository.UpdateAccount(ctx, accountID, models.AccountUpdate{
		SessionToken: &empty,
	}); err != nil {
		log.Err(err).Int64("id", accountID).Msg("clearing session token failed")
		return fmt.Errorf("clearing session token failed: %w", err)
	}

	return nil
}

// Authenticate resolves a raw bearer token to its owning account.
//
// The token signature, expiry, and issuer are verified first; then the
// account is loaded and the presented token is compared against the
// account's current session token, so tokens revoked by logout (or replaced
// by a newer login) are rejected even while cryptographically valid.
//
// Any failure is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not leak why authentication failed.
func (a *accountService) Authenticate(ctx context.Context, tokenString string) (models.Account, error) {
	log := logger.FromContext(ctx)

	token, err := a.parseToken(tokenString)
	if err != nil {
		return models.Account{}, err
	}

	// AccountID is populated from the "sub" claim during parsing.
	accountID := token.AccountID

	account, err := a.accountRepository.FindAccountByID(ctx, accountID)
	if err != nil {
		log.Err(err).Int64("id", accountID).Msg("token owner lookup failed")
		return models.Account{}, ErrTokenIsExpiredOrInvalid
	}

	if account.SessionToken != tokenString {
		log.Error().Int64("id", accountID).Msg("token is not the active session")
		return models.Account{}, ErrTokenIsExpiredOrInvalid
	}

	return account, nil
}

// UpdateSubscription switches the account's tier.
//
// Returns ErrInvalidSubscription if the tier is not one of the enumerated
// values, or a wrapped storage error if the update fails.
func (a *accountService) UpdateSubscription(ctx context.Context, accountID int64, subscription string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if !models.ValidSubscription(subscription) {
		log.Error().Str("subscription", subscription).Msg("unknown subscription tier")
		return models.Account{}, ErrInvalidSubscription
	}

	updated, err := a.accountRepository.UpdateAccount(ctx, accountID, models.AccountUpdate{
		Subscription: &subscription,
	})
	if err != nil {
		log.Err(err).Int64("id", accountID).Msg("subscription update failed")
		return models.Account{}, fmt.Errorf("subscription update failed: %w", err)
	}

	return updated, nil
}

// UpdateAvatar stores a new avatar for the account.
//
// The upload is normalized to the canonical square dimensions, written under
// the stable name "<accountID><ext>" (so each account has at most one stored
// avatar), and the account's AvatarURL is pointed at the served location.
// The URL always uses forward slashes regardless of platform.
//
// Returns ErrInvalidDataProvided for uploads without a file extension,
// avatar.ErrUnsupportedImage (wrapped) for undecodable payloads, or a
// wrapped storage error.
func (a *accountService) UpdateAvatar(ctx context.Context, accountID int64, fileName string, upload io.Reader) (models.Account, error) {
	log := logger.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		log.Error().Str("fileName", fileName).Msg("avatar upload without extension")
		return models.Account{}, ErrInvalidDataProvided
	}

	img, err := a.normalizer.Normalize(upload)
	if err != nil {
		log.Err(err).Int64("id", accountID).Msg("avatar normalization failed")
		return models.Account{}, fmt.Errorf("avatar normalization failed: %w", err)
	}

	storedName := strconv.FormatInt(accountID, 10) + ext
	if err := a.avatarFiles.Save(storedName, img); err != nil {
		log.Err(err).Int64("id", accountID).Msg("avatar write failed")
		return models.Account{}, fmt.Errorf("avatar write failed: %w", err)
	}

	avatarURL := path.Join("/avatars", storedName)
	updated, err := a.accountRepository.UpdateAccount(ctx, accountID, models.AccountUpdate{
		AvatarURL: &avatarURL,
	})
	if err != nil {
		log.Err(err).Int64("id", accountID).Msg("avatar url update failed")
		return models.Account{}, fmt.Errorf("avatar url update failed: %w", err)
	}

	return updated, nil
}

// VerifyEmail consumes a one-time verification token.
//
// The owning account is marked verified and the token is cleared, so a
// second use of the same token no longer resolves to any account.
//
// Returns ErrInvalidDataProvided for an empty token and a wrapped
// store.ErrAccountNotFound for unknown or already consumed tokens.
func (a *accountService) VerifyEmail(ctx context.Context, verificationToken string) error {
	log := logger.FromContext(ctx)

	if verificationToken == "" {
		log.Error().Msg("empty verification token")
		return ErrInvalidDataProvided
	}

	account, err := a.accountRepository.FindAccountByVerificationToken(ctx, verificationToken)
	if err != nil {
		log.Err(err).Msg("verification token lookup failed")
		return fmt.Errorf("verification token lookup failed: %w", err)
	}

	verified := true
	consumed := ""
	if _, err := a.accountRepository.UpdateAccount(ctx, account.AccountID, models.AccountUpdate{
		Verified:          &verified,
		VerificationToken: &consumed,
	}); err != nil {
		log.Err(err).Int64("id", account.AccountID).Msg("marking account verified failed")
		return fmt.Errorf("marking account verified failed: %w", err)
	}

	return nil
}

// ResendVerification re-dispatches the verification email for an unverified
// account, reusing the token issued at signup.
//
// Returns:
//   - ErrInvalidDataProvided for a malformed email.
//   - A wrapped store.ErrAccountNotFound for unknown emails.
//   - ErrAlreadyVerified if the account's email is already confirmed.
//   - A wrapped adapter.ErrDispatchFailed if the relay rejects the message.
func (a *accountService) ResendVerification(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if !validEmail(email) {
		log.Error().Str("email", email).Msg("invalid email provided for resend")
		return ErrInvalidDataProvided
	}

	account, err := a.accountRepository.FindAccountByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("account search by email failed")
		return fmt.Errorf("account search by email failed: %w", err)
	}

	if account.Verified {
		log.Error().Int64("id", account.AccountID).Msg("verification already passed")
		return ErrAlreadyVerified
	}

	if err := a.sendVerificationMail(ctx, account); err != nil {
		log.Err(err).Int64("id", account.AccountID).Msg("verification mail dispatch failed")
		return err
	}

	return nil
}

// createToken issues a signed JWT for the given account.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *accountService) createToken(account models.Account) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, account.AccountID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// parseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *accountService) parseToken(tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// sendVerificationMail renders the verification message and hands it to the
// mail relay.
func (a *accountService) sendVerificationMail(ctx context.Context, account models.Account) error {
	link := fmt.Sprintf("%s/api/users/verify/%s", a.verifyBaseURL, account.VerificationToken)
	html := fmt.Sprintf(`<a target="_blank" href="%s">Click verify email</a>`, link)

	return a.mailer.Send(ctx, account.Email, "Verify email", html)
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}
