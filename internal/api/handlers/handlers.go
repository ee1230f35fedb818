package handlers

import (
	"errors"
	"net/http"

	"github.com/swiftpay/wallet-backend/internal/api/httpx"
	"github.com/swiftpay/wallet-backend/internal/api/validate"
	repo "github.com/swiftpay/wallet-backend/internal/repository"
	"github.com/swiftpay/wallet-backend/internal/services"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var verrs validate.Errs
	if errors.As(err, &verrs) {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", verrs.Error(), verrs)
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidType),
		errors.Is(err, services.ErrPasswordMismatch):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, repo.ErrDuplicateTransaction),
		errors.Is(err, repo.ErrDuplicateAccount),
		errors.Is(err, repo.ErrDuplicateUser):
		httpx.WriteError(w, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case errors.Is(err, services.ErrGatewayResponse):
		httpx.WriteError(w, http.StatusBadGateway, "gateway_error", err.Error(), nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
