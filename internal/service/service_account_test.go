package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/akeeper/go-account-keeper/internal/adapter"
	"github.com/akeeper/go-account-keeper/internal/config"
	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/akeeper/go-account-keeper/internal/mock"
	"github.com/akeeper/go-account-keeper/internal/store"
	"github.com/akeeper/go-account-keeper/internal/utils"
	"github.com/akeeper/go-account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAccountSvc builds an accountService with all collaborators mocked.
func newTestAccountSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*accountService,
	*mock.MockAccountRepository,
	*mock.MockMailer,
	*mock.MockNormalizer,
	*mock.MockFileStore,
) {
	t.Helper()
	mockRepo := mock.NewMockAccountRepository(ctrl)
	mockMailer := mock.NewMockMailer(ctrl)
	mockNormalizer := mock.NewMockNormalizer(ctrl)
	mockFiles := mock.NewMockFileStore(ctrl)

	appCfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "test-issuer",
		TokenDuration: 23 * time.Hour,
	}
	mailerCfg := config.Mailer{
		Sender:        "no-reply@example.com",
		VerifyBaseURL: "http://localhost:8080",
	}

	svc := NewAccountService(mockRepo, mockMailer, mockNormalizer, mockFiles, appCfg, mailerCfg, logger.Nop()).(*accountService)
	return svc, mockRepo, mockMailer, mockNormalizer, mockFiles
}

// ── SignUp ───────────────────────────────────────────────────────────────────

func TestAccountService_SignUp_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockMailer, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	credentials := models.Credentials{Email: "john@example.com", Password: "super-secret"}

	gomock.InOrder(
		mockRepo.EXPECT().CreateAccount(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, account models.Account) (models.Account, error) {
				assert.Equal(t, "john@example.com", account.Email)
				assert.NotEqual(t, credentials.Password, account.PasswordHash, "password must never be stored in plaintext")
				assert.True(t, utils.CheckPassword(credentials.Password, account.PasswordHash))
				assert.Equal(t, models.SubscriptionStarter, account.Subscription)
				assert.Equal(t, utils.GravatarURL(credentials.Email), account.AvatarURL)
				assert.Len(t, account.VerificationToken, 32)
				assert.False(t, account.Verified)

				account.AccountID = 1
				return account, nil
			},
		),
		mockMailer.EXPECT().Send(ctx, "john@example.com", "Verify email", gomock.Any()).Return(nil),
	)

	created, err := svc.SignUp(ctx, credentials)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.AccountID)
	assert.NotEmpty(t, created.VerificationToken)
}

func TestAccountService_SignUp_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name        string
		credentials models.Credentials
	}{
		{"empty email", models.Credentials{Password: "secret"}},
		{"empty password", models.Credentials{Email: "john@example.com"}},
		{"email without at sign", models.Credentials{Email: "john.example.com", Password: "secret"}},
		{"email without domain", models.Credentials{Email: "john@", Password: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tt.credentials)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAccountService_SignUp_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().CreateAccount(ctx, gomock.Any()).Return(models.Account{}, store.ErrEmailAlreadyExists)

	_, err := svc.SignUp(ctx, models.Credentials{Email: "john@example.com", Password: "secret"})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAccountService_SignUp_MailFailureDoesNotFailSignup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockMailer, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().CreateAccount(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, account models.Account) (models.Account, error) {
			account.AccountID = 1
			return account, nil
		},
	)
	mockMailer.EXPECT().Send(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(adapter.ErrDispatchFailed)

	created, err := svc.SignUp(ctx, models.Credentials{Email: "john@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.AccountID)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAccountService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	passwordHash, err := utils.HashPassword("super-secret")
	require.NoError(t, err)

	found := models.Account{
		AccountID:    1,
		Email:        "john@example.com",
		PasswordHash: passwordHash,
	}

	gomock.InOrder(
		mockRepo.EXPECT().FindAccountByEmail(ctx, "john@example.com").Return(found, nil),
		mockRepo.EXPECT().UpdateAccount(ctx, int64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, update models.AccountUpdate) (models.Account, error) {
				require.NotNil(t, update.SessionToken)
				assert.NotEmpty(t, *update.SessionToken)

				updated := found
				updated.SessionToken = *update.SessionToken
				return updated, nil
			},
		),
	)

	account, token, err := svc.Login(ctx, models.Credentials{Email: "john@example.com", Password: "super-secret"})
	require.NoError(t, err)
	assert.Equal(t, token.SignedString, account.SessionToken, "issued token must be persisted as the active session")

	parsed, err := utils.ValidateAndParseJWTToken(token.SignedString, "test-sign-key", "test-issuer")
	require.NoError(t, err)
	accountID, err := parsed.GetAccountID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), accountID)
}

func TestAccountService_Login_FailuresAreIndistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	passwordHash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	// unknown email
	mockRepo.EXPECT().FindAccountByEmail(ctx, "ghost@example.com").Return(models.Account{}, store.ErrAccountNotFound)
	_, _, errUnknown := svc.Login(ctx, models.Credentials{Email: "ghost@example.com", Password: "whatever"})

	// wrong password
	mockRepo.EXPECT().FindAccountByEmail(ctx, "john@example.com").Return(models.Account{
		AccountID:    1,
		Email:        "john@example.com",
		PasswordHash: passwordHash,
	}, nil)
	_, _, errWrongPass := svc.Login(ctx, models.Credentials{Email: "john@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error(), "login failures must not reveal which field was wrong")
}

func TestAccountService_Login_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, models.Credentials{Email: "", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, _, err = svc.Login(ctx, models.Credentials{Email: "john@example.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestAccountService_Logout_ClearsSessionToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().UpdateAccount(ctx, int64(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, update models.AccountUpdate) (models.Account, error) {
			require.NotNil(t, update.SessionToken)
			assert.Empty(t, *update.SessionToken)
			return models.Account{AccountID: 1}, nil
		},
	)

	require.NoError(t, svc.Logout(ctx, 1))
}

func TestAccountService_Logout_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	// account is already logged out; clearing again still succeeds
	mockRepo.EXPECT().UpdateAccount(ctx, int64(1), gomock.Any()).
		Return(models.Account{AccountID: 1}, nil).
		Times(2)

	require.NoError(t, svc.Logout(ctx, 1))
	require.NoError(t, svc.Logout(ctx, 1))
}

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestAccountService_Authenticate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.createToken(models.Account{AccountID: 1})
	require.NoError(t, err)

	account := models.Account{
		AccountID:    1,
		Email:        "john@example.com",
		SessionToken: token.SignedString,
	}

	mockRepo.EXPECT().FindAccountByID(ctx, int64(1)).Return(account, nil)

	authed, err := svc.Authenticate(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(1), authed.AccountID)
}

func TestAccountService_Authenticate_RevokedByLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.createToken(models.Account{AccountID: 1})
	require.NoError(t, err)

	// session token was cleared by logout; the JWT is still cryptographically valid
	mockRepo.EXPECT().FindAccountByID(ctx, int64(1)).Return(models.Account{
		AccountID:    1,
		SessionToken: "",
	}, nil)

	_, err = svc.Authenticate(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAccountService_Authenticate_MalformedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestAccountSvc(t, ctrl)

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAccountService_Authenticate_UnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.createToken(models.Account{AccountID: 404})
	require.NoError(t, err)

	mockRepo.EXPECT().FindAccountByID(ctx, int64(404)).Return(models.Account{}, store.ErrAccountNotFound)

	_, err = svc.Authenticate(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ── UpdateSubscription ───────────────────────────────────────────────────────

func TestAccountService_UpdateSubscription_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().UpdateAccount(ctx, int64(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, update models.AccountUpdate) (models.Account, error) {
			require.NotNil(t, update.Subscription)
			assert.Equal(t, models.SubscriptionPro, *update.Subscription)
			return models.Account{AccountID: 1, Subscription: models.SubscriptionPro}, nil
		},
	)

	updated, err := svc.UpdateSubscription(ctx, 1, models.SubscriptionPro)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPro, updated.Subscription)
}

func TestAccountService_UpdateSubscription_UnknownTier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestAccountSvc(t, ctrl)

	_, err := svc.UpdateSubscription(context.Background(), 1, "platinum")
	assert.ErrorIs(t, err, ErrInvalidSubscription)
}

// ── UpdateAvatar ─────────────────────────────────────────────────────────────

func TestAccountService_UpdateAvatar_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockNormalizer, mockFiles := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	upload := bytes.NewReader([]byte("fake image bytes"))
	normalized := image.NewRGBA(image.Rect(0, 0, 250, 250))

	gomock.InOrder(
		mockNormalizer.EXPECT().Normalize(upload).Return(normalized, nil),
		mockFiles.EXPECT().Save("7.png", normalized).Return(nil),
		mockRepo.EXPECT().UpdateAccount(ctx, int64(7), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, update models.AccountUpdate) (models.Account, error) {
				require.NotNil(t, update.AvatarURL)
				assert.Equal(t, "/avatars/7.png", *update.AvatarURL)
				assert.NotContains(t, *update.AvatarURL, "\\")
				return models.Account{AccountID: 7, AvatarURL: *update.AvatarURL}, nil
			},
		),
	)

	updated, err := svc.UpdateAvatar(ctx, 7, "holiday photo.PNG", upload)
	require.NoError(t, err)
	assert.Equal(t, "/avatars/7.png", updated.AvatarURL)
}

func TestAccountService_UpdateAvatar_MissingExtension(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestAccountSvc(t, ctrl)

	_, err := svc.UpdateAvatar(context.Background(), 7, "avatar", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAccountService_UpdateAvatar_NormalizeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, mockNormalizer, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	upload := strings.NewReader("not an image")
	mockNormalizer.EXPECT().Normalize(upload).Return(nil, errors.New("decode failure"))

	_, err := svc.UpdateAvatar(ctx, 7, "avatar.png", upload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "avatar normalization failed")
}

// ── VerifyEmail ──────────────────────────────────────────────────────────────

func TestAccountService_VerifyEmail_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockRepo.EXPECT().FindAccountByVerificationToken(ctx, "deadbeef").Return(models.Account{
			AccountID:         1,
			VerificationToken: "deadbeef",
		}, nil),
		mockRepo.EXPECT().UpdateAccount(ctx, int64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, update models.AccountUpdate) (models.Account, error) {
				require.NotNil(t, update.Verified)
				require.NotNil(t, update.VerificationToken)
				assert.True(t, *update.Verified)
				assert.Empty(t, *update.VerificationToken, "token must be consumed on verification")
				return models.Account{AccountID: 1, Verified: true}, nil
			},
		),
	)

	require.NoError(t, svc.VerifyEmail(ctx, "deadbeef"))
}

func TestAccountService_VerifyEmail_UnknownOrConsumedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().FindAccountByVerificationToken(ctx, "used-up").Return(models.Account{}, store.ErrAccountNotFound)

	err := svc.VerifyEmail(ctx, "used-up")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestAccountService_VerifyEmail_EmptyToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestAccountSvc(t, ctrl)

	err := svc.VerifyEmail(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── ResendVerification ───────────────────────────────────────────────────────

func TestAccountService_ResendVerification_ReusesExistingToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockMailer, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockRepo.EXPECT().FindAccountByEmail(ctx, "john@example.com").Return(models.Account{
			AccountID:         1,
			Email:             "john@example.com",
			VerificationToken: "original-token",
		}, nil),
		mockMailer.EXPECT().Send(ctx, "john@example.com", "Verify email", gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _, html string) error {
				assert.Contains(t, html, "/api/users/verify/original-token")
				return nil
			},
		),
	)

	require.NoError(t, svc.ResendVerification(ctx, "john@example.com"))
}

func TestAccountService_ResendVerification_AlreadyVerified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().FindAccountByEmail(ctx, "john@example.com").Return(models.Account{
		AccountID: 1,
		Email:     "john@example.com",
		Verified:  true,
	}, nil)

	err := svc.ResendVerification(ctx, "john@example.com")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestAccountService_ResendVerification_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().FindAccountByEmail(ctx, "ghost@example.com").Return(models.Account{}, store.ErrAccountNotFound)

	err := svc.ResendVerification(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestAccountService_ResendVerification_DispatchFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockMailer, _, _ := newTestAccountSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockRepo.EXPECT().FindAccountByEmail(ctx, "john@example.com").Return(models.Account{
			AccountID:         1,
			Email:             "john@example.com",
			VerificationToken: "original-token",
		}, nil),
		mockMailer.EXPECT().Send(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(adapter.ErrDispatchFailed),
	)

	err := svc.ResendVerification(ctx, "john@example.com")
	assert.ErrorIs(t, err, adapter.ErrDispatchFailed)
}

func TestAccountService_ResendVerification_InvalidEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestAccountSvc(t, ctrl)

	err := svc.ResendVerification(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
