// Package otp wraps the external SMS verification service. Codes are
// generated, delivered and checked entirely on the Twilio side; this
// process never sees them except when a client echoes one back.
package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Verifier interface {
	// Send asks the service to deliver a code to the phone number and
	// returns the verification request id.
	Send(ctx context.Context, phone string) (sid string, err error)
	// Check reports whether the code is approved for the phone number.
	Check(ctx context.Context, phone, code string) (bool, error)
}

type TwilioVerify struct {
	accountSID string
	authToken  string
	verifySID  string
	baseURL    string
	http       *http.Client
}

func NewTwilioVerify(accountSID, authToken, verifySID string) *TwilioVerify {
	return &TwilioVerify{
		accountSID: accountSID,
		authToken:  authToken,
		verifySID:  verifySID,
		baseURL:    "https://verify.twilio.com",
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

type verificationResponse struct {
	Sid    string `json:"sid"`
	Status string `json:"status"`
}

func (t *TwilioVerify) Send(ctx context.Context, phone string) (string, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Channel", "sms")

	var resp verificationResponse
	endpoint := fmt.Sprintf("%s/v2/Services/%s/Verifications", t.baseURL, t.verifySID)
	if err := t.post(ctx, endpoint, form, &resp); err != nil {
		return "", fmt.Errorf("send otp: %w", err)
	}
	return resp.Sid, nil
}

func (t *TwilioVerify) Check(ctx context.Context, phone, code string) (bool, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Code", code)

	var resp verificationResponse
	endpoint := fmt.Sprintf("%s/v2/Services/%s/VerificationCheck", t.baseURL, t.verifySID)
	if err := t.post(ctx, endpoint, form, &resp); err != nil {
		return false, fmt.Errorf("check otp: %w", err)
	}
	return resp.Status == "approved", nil
}

func (t *TwilioVerify) post(ctx context.Context, endpoint string, form url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("verify service returned %d: %s", res.StatusCode, body)
	}
	return json.Unmarshal(body, v)
}
