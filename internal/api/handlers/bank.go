package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/swiftpay/wallet-backend/internal/api/httpx"
	"github.com/swiftpay/wallet-backend/internal/models"
	"github.com/swiftpay/wallet-backend/internal/money"
	"github.com/swiftpay/wallet-backend/internal/services"
)

type BankHandler struct {
	Bank *services.BankService
}

func NewBankHandler(bs *services.BankService) *BankHandler {
	return &BankHandler{Bank: bs}
}

func (h *BankHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Bank.ListAccounts()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "accounts": accounts})
}

func (h *BankHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountHolder string `json:"account_holder"`
		AccountNumber string `json:"account_number"`
		IFSCCode      string `json:"ifsc_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "bad request", nil)
		return
	}
	a, err := h.Bank.CreateAccount(models.BankAccount{
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, a)
}

func (h *BankHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Bank.DeleteAccount(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// AddTransaction records a credit or debit ledger entry. A debit beyond
// the balance comes back success=false with the entry stored as failed.
func (h *BankHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TransactionID string  `json:"transaction_id"`
		Amount        float64 `json:"amount"`
		Type          string  `json:"type"`
		AccountNumber string  `json:"account_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccountNumber == "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "bad request", nil)
		return
	}
	paise, err := money.RupeesToPaise(req.Amount)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid amount", nil)
		return
	}

	res, err := h.Bank.AddEntry(req.TransactionID, req.AccountNumber, paise, models.TransactionType(req.Type))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.writeEntry(w, res)
}

func (h *BankHandler) AddMoney(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount        float64 `json:"amount"`
		AccountNumber string  `json:"account_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccountNumber == "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "bad request", nil)
		return
	}
	paise, err := money.RupeesToPaise(req.Amount)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid amount", nil)
		return
	}

	res, err := h.Bank.AddMoney(req.AccountNumber, paise)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.writeEntry(w, res)
}

func (h *BankHandler) writeEntry(w http.ResponseWriter, res services.EntryResult) {
	ok := res.Transaction.Status == models.TxnSuccess
	msg := "transaction successful"
	if !ok {
		msg = "transaction failed"
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success":         ok,
		"message":         msg,
		"transaction":     res.Transaction,
		"updated_balance": res.Account.Balance,
	})
}

func (h *BankHandler) History(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account_number")

	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	txs, err := h.Bank.History(account, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "transactions": txs})
}
