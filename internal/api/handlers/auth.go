package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/swiftpay/wallet-backend/internal/api/httpx"
	"github.com/swiftpay/wallet-backend/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(us *services.UserService) *AuthHandler {
	return &AuthHandler{Users: us}
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "phone_number is required", nil)
		return
	}
	sid, err := h.Users.SendOTP(r.Context(), req.PhoneNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "sid": sid})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
		Code        string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" || req.Code == "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "phone_number and code are required", nil)
		return
	}
	ok, err := h.Users.VerifyOTP(r.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_otp", "invalid otp", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber     string `json:"phone_number"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "bad request", nil)
		return
	}
	u, err := h.Users.Register(req.PhoneNumber, req.Password, req.ConfirmPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "bad request", nil)
		return
	}
	pair, err := h.Users.Login(req.PhoneNumber, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "refresh_token is required", nil)
		return
	}
	pair, err := h.Users.Refresh(req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}
