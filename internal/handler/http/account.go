package http

import (
	"encoding/json"
	"net/http"

	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/akeeper/go-account-keeper/internal/utils"
	"github.com/akeeper/go-account-keeper/models"
)

// maxAvatarUploadSize bounds the multipart form held in memory for an
// avatar upload.
const maxAvatarUploadSize = 5 << 20

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	account, ok := utils.GetAccountFromContext(r.Context())
	if !ok {
		log.Error().Msg("no authenticated account in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.CurrentResponse{
		Email:        account.Email,
		Subscription: account.Subscription,
	}, http.StatusOK)
}

func (h *Handler) updateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	account, ok := utils.GetAccountFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated account in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.SubscriptionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.AccountService.UpdateSubscription(ctx, account.AccountID, update.Subscription)
	if err != nil {
		log.Err(err).Int64("id", account.AccountID).Msg("subscription update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Debug().Int64("id", updated.AccountID).Str("subscription", updated.Subscription).Msg("subscription updated")

	utils.WriteJSON(w, updated.Projection(), http.StatusOK)
}

func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	account, ok := utils.GetAccountFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated account in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxAvatarUploadSize); err != nil {
		log.Err(err).Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		log.Err(err).Msg("avatar file is missing from the form")
		http.Error(w, "avatar file is missing from the form", http.StatusBadRequest)
		return
	}
	defer file.Close()

	updated, err := h.services.AccountService.UpdateAvatar(ctx, account.AccountID, header.Filename, file)
	if err != nil {
		log.Err(err).Int64("id", account.AccountID).Msg("avatar update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Debug().Int64("id", updated.AccountID).Str("avatarURL", updated.AvatarURL).Msg("avatar updated")

	utils.WriteJSON(w, models.AvatarResponse{AvatarURL: updated.AvatarURL}, http.StatusOK)
}
