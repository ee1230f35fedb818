package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type Claims struct {
	UserID string `json:"uid"`
	Type   string `json:"typ"` // "access" | "refresh"
	jwt.RegisteredClaims
}

// GeneratePair issues an access and a refresh token for the user.
func (tm *TokenManager) GeneratePair(userID string) (access, refresh string, accessExp time.Time, err error) {
	now := time.Now()

	mk := func(typ string, ttl time.Duration) (string, time.Time, error) {
		exp := now.Add(ttl)
		claims := Claims{
			UserID: userID,
			Type:   typ,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tm.issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
		return tok, exp, err
	}

	access, accessExp, err = mk("access", tm.accessTTL)
	if err != nil {
		return "", "", time.Time{}, err
	}
	refresh, _, err = mk("refresh", tm.refreshTTL)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return access, refresh, accessExp, nil
}

// Parse validates a token and returns its claims plus whether it is a
// refresh token.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, bool, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, false, errors.New("invalid token")
	}
	return claims, claims.Type == "refresh", nil
}
