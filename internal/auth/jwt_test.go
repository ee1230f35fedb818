package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParsePair(t *testing.T) {
	tm := NewTokenManager("secret", "wallet-backend", time.Minute, time.Hour)

	access, refresh, exp, err := tm.GeneratePair("user-1")
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Error("access token already expired")
	}

	claims, isRefresh, err := tm.Parse(access)
	if err != nil {
		t.Fatalf("Parse access: %v", err)
	}
	if isRefresh || claims.UserID != "user-1" {
		t.Errorf("claims = %+v, isRefresh = %v", claims, isRefresh)
	}

	claims, isRefresh, err = tm.Parse(refresh)
	if err != nil {
		t.Fatalf("Parse refresh: %v", err)
	}
	if !isRefresh || claims.UserID != "user-1" {
		t.Errorf("claims = %+v, isRefresh = %v", claims, isRefresh)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", "wallet-backend", time.Minute, time.Hour)
	other := NewTokenManager("secret-b", "wallet-backend", time.Minute, time.Hour)

	access, _, _, err := tm.GeneratePair("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := other.Parse(access); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", "wallet-backend", -time.Minute, time.Hour)
	access, _, _, err := tm.GeneratePair("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := tm.Parse(access); err == nil {
		t.Error("expected error for expired token")
	}
}
