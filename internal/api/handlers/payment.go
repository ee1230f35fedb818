package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/swiftpay/wallet-backend/internal/api/httpx"
	"github.com/swiftpay/wallet-backend/internal/middleware"
	"github.com/swiftpay/wallet-backend/internal/models"
	"github.com/swiftpay/wallet-backend/internal/money"
	"github.com/swiftpay/wallet-backend/internal/services"
)

type PaymentHandler struct {
	Payments *services.PaymentService
	Balances *services.BalanceService
}

func NewPaymentHandler(ps *services.PaymentService, bs *services.BalanceService) *PaymentHandler {
	return &PaymentHandler{Payments: ps, Balances: bs}
}

// Initiate accepts a rupee amount, creates a pending transaction and
// returns the hosted checkout URL.
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing user", nil)
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "bad request", nil)
		return
	}
	paise, err := money.RupeesToPaise(req.Amount)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid amount", nil)
		return
	}

	res, err := h.Payments.Initiate(r.Context(), uid, paise)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"paymentUrl":    res.PaymentURL,
		"transactionId": res.TransactionID,
	})
}

// Status polls the gateway and settles the transaction.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TransactionID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "transactionId is required", nil)
		return
	}

	res, err := h.Payments.CheckStatus(r.Context(), req.TransactionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := map[string]any{"transactionId": res.TransactionID}
	switch res.Status {
	case models.TxnSuccess:
		out["success"] = true
		if res.AlreadyProcessed {
			out["message"] = "payment already processed"
		} else {
			out["message"] = "payment successful"
		}
		if res.Balance != nil {
			out["remainingBalance"] = res.Balance.Amount
		}
	case models.TxnPending:
		out["success"] = false
		out["message"] = "payment is still pending"
	default:
		out["success"] = false
		out["message"] = "payment failed"
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *PaymentHandler) Balance(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing user", nil)
		return
	}
	b, err := h.Balances.Current(uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}
