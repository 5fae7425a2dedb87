package http

import (
	"errors"
	"net/http"

	"github.com/akeeper/go-account-keeper/internal/adapter"
	"github.com/akeeper/go-account-keeper/internal/avatar"
	"github.com/akeeper/go-account-keeper/internal/service"
	"github.com/akeeper/go-account-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidSubscription:     http.StatusBadRequest,
	service.ErrAlreadyVerified:         http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrAccountNotFound:    http.StatusNotFound,

	avatar.ErrUnsupportedImage: http.StatusBadRequest,
	avatar.ErrSavingAvatar:     http.StatusInternalServerError,

	adapter.ErrDispatchFailed: http.StatusBadGateway,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
