// SPDX-License-Identifier: Apache-2.0

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akeeper/go-account-keeper/internal/service"
	"github.com/akeeper/go-account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// avatarForm builds a multipart body with a single "avatar" file part.
func avatarForm(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// ─────────────────────────────────────────────
// current
// ─────────────────────────────────────────────

// TestCurrent_Success verifies that the authenticated account's projection is
// returned without any sensitive fields.
func TestCurrent_Success(t *testing.T) {
	h := newHandlerWithAccounts(t, &mockAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	req = withAccount(req, models.Account{
		AccountID:    1,
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$digest",
		Subscription: models.SubscriptionBusiness,
		SessionToken: "active-session",
	})
	rec := httptest.NewRecorder()

	h.current(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CurrentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, models.SubscriptionBusiness, resp.Subscription)
	assert.NotContains(t, rec.Body.String(), "digest")
	assert.NotContains(t, rec.Body.String(), "active-session")
}

func TestCurrent_NoAccountInContext(t *testing.T) {
	h := newHandlerWithAccounts(t, &mockAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	rec := httptest.NewRecorder()

	h.current(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// updateSubscription
// ─────────────────────────────────────────────

func TestUpdateSubscription_Success(t *testing.T) {
	accounts := &mockAccountService{
		updateSubscriptionFn: func(_ context.Context, accountID int64, subscription string) (models.Account, error) {
			assert.Equal(t, int64(7), accountID)
			assert.Equal(t, models.SubscriptionPro, subscription)
			return models.Account{
				AccountID:    7,
				Email:        "alice@example.com",
				Subscription: subscription,
			}, nil
		},
	}

	h := newHandlerWithAccounts(t, accounts)
	req := httptest.NewRequest(http.MethodPatch, "/api/users", strings.NewReader(`{"subscription":"pro"}`))
	req = withAccount(req, models.Account{AccountID: 7})
	rec := httptest.NewRecorder()

	h.updateSubscription(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AccountProjection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.SubscriptionPro, resp.Subscription)
}

func TestUpdateSubscription_UnknownTier(t *testing.T) {
	accounts := &mockAccountService{
		updateSubscriptionFn: func(_ context.Context, _ int64, _ string) (models.Account, error) {
			return models.Account{}, service.ErrInvalidSubscription
		},
	}

	h := newHandlerWithAccounts(t, accounts)
	req := httptest.NewRequest(http.MethodPatch, "/api/users", strings.NewReader(`{"subscription":"platinum"}`))
	req = withAccount(req, models.Account{AccountID: 7})
	rec := httptest.NewRecorder()

	h.updateSubscription(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSubscription_InvalidJSON(t *testing.T) {
	h := newHandlerWithAccounts(t, &mockAccountService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/users", strings.NewReader("{broken"))
	req = withAccount(req, models.Account{AccountID: 7})
	rec := httptest.NewRecorder()

	h.updateSubscription(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSubscription_NoAccountInContext(t *testing.T) {
	h := newHandlerWithAccounts(t, &mockAccountService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/users", strings.NewReader(`{"subscription":"pro"}`))
	rec := httptest.NewRecorder()

	h.updateSubscription(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// updateAvatar
// ─────────────────────────────────────────────

func TestUpdateAvatar_Success(t *testing.T) {
	accounts := &mockAccountService{
		updateAvatarFn: func(_ context.Context, accountID int64, fileName string, upload io.Reader) (models.Account, error) {
			assert.Equal(t, int64(7), accountID)
			assert.Equal(t, "photo.png", fileName)

			content, err := io.ReadAll(upload)
			require.NoError(t, err)
			assert.Equal(t, []byte("image-bytes"), content)

			return models.Account{AccountID: 7, AvatarURL: "/avatars/7.png"}, nil
		},
	}

	h := newHandlerWithAccounts(t, accounts)
	body, contentType := avatarForm(t, "avatar", "photo.png", []byte("image-bytes"))
	req := httptest.NewRequest(http.MethodPatch, "/api/users/avatars", body)
	req.Header.Set("Content-Type", contentType)
	req = withAccount(req, models.Account{AccountID: 7})
	rec := httptest.NewRecorder()

	h.updateAvatar(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AvatarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/avatars/7.png", resp.AvatarURL)
}

// TestUpdateAvatar_MissingFilePart verifies that a form without the "avatar"
// part is rejected with 400.
func TestUpdateAvatar_MissingFilePart(t *testing.T) {
	h := newHandlerWithAccounts(t, &mockAccountService{})

	body, contentType := avatarForm(t, "wrong-field", "photo.png", []byte("image-bytes"))
	req := httptest.NewRequest(http.MethodPatch, "/api/users/avatars", body)
	req.Header.Set("Content-Type", contentType)
	req = withAccount(req, models.Account{AccountID: 7})
	rec := httptest.NewRecorder()

	h.updateAvatar(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "avatar file is missing")
}

func TestUpdateAvatar_NotMultipart(t *testing.T) {
	h := newHandlerWithAccounts(t, &mockAccountService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/users/avatars", strings.NewReader("plain body"))
	req = withAccount(req, models.Account{AccountID: 7})
	rec := httptest.NewRecorder()

	h.updateAvatar(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAvatar_ServiceError(t *testing.T) {
	accounts := &mockAccountService{
		updateAvatarFn: func(_ context.Context, _ int64, _ string, _ io.Reader) (models.Account, error) {
			return models.Account{}, service.ErrInvalidDataProvided
		},
	}

	h := newHandlerWithAccounts(t, accounts)
	body, contentType := avatarForm(t, "avatar", "noextension", []byte("image-bytes"))
	req := httptest.NewRequest(http.MethodPatch, "/api/users/avatars", body)
	req.Header.Set("Content-Type", contentType)
	req = withAccount(req, models.Account{AccountID: 7})
	rec := httptest.NewRecorder()

	h.updateAvatar(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
