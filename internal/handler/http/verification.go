package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akeeper/go-account-keeper/internal/logger"
	"github.com/akeeper/go-account-keeper/internal/service"
	"github.com/akeeper/go-account-keeper/internal/store"
	"github.com/akeeper/go-account-keeper/internal/utils"
	"github.com/akeeper/go-account-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	verificationToken := chi.URLParam(r, "verificationToken")

	if err := h.services.AccountService.VerifyEmail(ctx, verificationToken); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid verification token provided")
			http.Error(w, "invalid verification token provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrAccountNotFound):
			log.Err(err).Msg("unknown or already used verification token")
			http.Error(w, "unknown or already used verification token", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during email verification")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "email verified"}, http.StatusOK)
}

func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ResendVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AccountService.ResendVerification(ctx, request.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid email provided")
			http.Error(w, "invalid email provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrAccountNotFound):
			log.Err(err).Msg("no account for provided email")
			http.Error(w, "no account for provided email", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrAlreadyVerified):
			log.Err(err).Msg("verification has already been passed")
			http.Error(w, service.ErrAlreadyVerified.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during verification resend")
			http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "verification email sent"}, http.StatusOK)
}
