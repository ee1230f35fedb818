package otp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(srv *httptest.Server) *TwilioVerify {
	t := NewTwilioVerify("AC123", "token", "VA456")
	t.baseURL = srv.URL
	return t
}

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/Services/VA456/Verifications" {
			t.Errorf("path = %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "token" {
			t.Error("missing or wrong basic auth")
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("To") != "+911234567890" || r.PostForm.Get("Channel") != "sms" {
			t.Errorf("form = %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"sid": "VE789", "status": "pending"})
	}))
	defer srv.Close()

	sid, err := newTestClient(srv).Send(context.Background(), "+911234567890")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sid != "VE789" {
		t.Errorf("sid = %q", sid)
	}
}

func TestCheck(t *testing.T) {
	cases := []struct {
		status   string
		approved bool
	}{
		{"approved", true},
		{"pending", false},
		{"canceled", false},
	}
	for _, c := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v2/Services/VA456/VerificationCheck" {
				t.Errorf("path = %q", r.URL.Path)
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"status": c.status})
		}))

		ok, err := newTestClient(srv).Check(context.Background(), "+911234567890", "123456")
		srv.Close()
		if err != nil {
			t.Fatalf("Check(%s): %v", c.status, err)
		}
		if ok != c.approved {
			t.Errorf("Check with status %q = %v, want %v", c.status, ok, c.approved)
		}
	}
}

func TestCheckServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).Check(context.Background(), "+911234567890", "000000"); err == nil {
		t.Error("expected error on 401")
	}
}
