package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/swiftpay/wallet-backend/internal/api/validate"
	"github.com/swiftpay/wallet-backend/internal/auth"
	"github.com/swiftpay/wallet-backend/internal/metrics"
	"github.com/swiftpay/wallet-backend/internal/models"
	"github.com/swiftpay/wallet-backend/internal/otp"
	repo "github.com/swiftpay/wallet-backend/internal/repository"
)

type UserService struct {
	users    repo.Users
	verifier otp.Verifier
	tm       *auth.TokenManager
}

func NewUserService(users repo.Users, verifier otp.Verifier, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, verifier: verifier, tm: tm}
}

func (s *UserService) SendOTP(ctx context.Context, phone string) (string, error) {
	u := models.User{Phone: strings.TrimSpace(phone)}
	if err := u.Validate(); err != nil {
		return "", err
	}
	metrics.OTPRequests.WithLabelValues("send").Inc()
	return s.verifier.Send(ctx, u.Phone)
}

func (s *UserService) VerifyOTP(ctx context.Context, phone, code string) (bool, error) {
	if strings.TrimSpace(phone) == "" || strings.TrimSpace(code) == "" {
		return false, validate.Errs{{Field: "code", Msg: "phone number and code are required"}}
	}
	metrics.OTPRequests.WithLabelValues("check").Inc()
	return s.verifier.Check(ctx, strings.TrimSpace(phone), strings.TrimSpace(code))
}

func (s *UserService) Register(phone, password, confirmPassword string) (models.User, error) {
	u := models.User{Phone: strings.TrimSpace(phone)}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if password == "" || password != confirmPassword {
		return models.User{}, ErrPasswordMismatch
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return s.users.Create(u.Phone, hash)
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *UserService) Login(phone, password string) (TokenPair, error) {
	u, err := s.users.GetByPhone(strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	access, refresh, exp, err := s.tm.GeneratePair(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

func (s *UserService) Refresh(refreshToken string) (TokenPair, error) {
	claims, isRefresh, err := s.tm.Parse(refreshToken)
	if err != nil || !isRefresh {
		return TokenPair{}, ErrInvalidCredentials
	}
	access, refresh, exp, err := s.tm.GeneratePair(claims.UserID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}
