package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const (
	payPath        = "/pg/v1/pay"
	statusPathBase = "/pg/v1/status"
)

type PhonePeConfig struct {
	MerchantID  string
	PayURL      string
	StatusURL   string
	CallbackURL string
	Timeout     time.Duration
}

// PhonePe talks to the PhonePe hosted-checkout API. Outbound calls go
// through a circuit breaker so a dead gateway fails fast instead of tying
// up request handlers; there is no retry.
type PhonePe struct {
	cfg    PhonePeConfig
	signer Signer
	http   *http.Client
	cb     *gobreaker.CircuitBreaker
}

func NewPhonePe(cfg PhonePeConfig, signer Signer) *PhonePe {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &PhonePe{
		cfg:    cfg,
		signer: signer,
		http:   &http.Client{Timeout: cfg.Timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "phonepe",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

type initiatePayload struct {
	MerchantID            string            `json:"merchantId"`
	MerchantTransactionID string            `json:"merchantTransactionId"`
	Amount                int64             `json:"amount"`
	RedirectURL           string            `json:"redirectUrl"`
	CallbackURL           string            `json:"callbackUrl"`
	PaymentInstrument     map[string]string `json:"paymentInstrument"`
}

type initiateResponse struct {
	Success bool `json:"success"`
	Data    struct {
		InstrumentResponse struct {
			RedirectInfo struct {
				URL string `json:"url"`
			} `json:"redirectInfo"`
		} `json:"instrumentResponse"`
	} `json:"data"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
}

func (p *PhonePe) Initiate(ctx context.Context, req InitiateRequest) (string, error) {
	payload := initiatePayload{
		MerchantID:            p.cfg.MerchantID,
		MerchantTransactionID: req.TransactionID,
		Amount:                req.AmountPaise,
		RedirectURL:           p.cfg.CallbackURL,
		CallbackURL:           p.cfg.CallbackURL,
		PaymentInstrument:     map[string]string{"type": "PAY_PAGE"},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	b64 := base64.StdEncoding.EncodeToString(raw)
	checksum := p.signer.Sign(b64 + payPath)

	body, err := json.Marshal(map[string]string{"request": b64})
	if err != nil {
		return "", err
	}

	out, err := p.cb.Execute(func() (any, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.PayURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-VERIFY", checksum)
		httpReq.Header.Set("X-MERCHANT-ID", p.cfg.MerchantID)

		var resp initiateResponse
		if err := p.do(httpReq, &resp); err != nil {
			return nil, err
		}
		url := resp.Data.InstrumentResponse.RedirectInfo.URL
		if !resp.Success || url == "" {
			return nil, ErrNoRedirectURL
		}
		return url, nil
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (p *PhonePe) Status(ctx context.Context, transactionID string) (string, error) {
	path := fmt.Sprintf("%s/%s/%s", statusPathBase, p.cfg.MerchantID, transactionID)
	checksum := p.signer.Sign(path)
	url := fmt.Sprintf("%s/%s/%s", p.cfg.StatusURL, p.cfg.MerchantID, transactionID)

	out, err := p.cb.Execute(func() (any, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-VERIFY", checksum)
		httpReq.Header.Set("X-MERCHANT-ID", p.cfg.MerchantID)

		var resp statusResponse
		if err := p.do(httpReq, &resp); err != nil {
			return nil, err
		}
		if resp.Code == "" {
			return nil, fmt.Errorf("gateway status response missing code")
		}
		return resp.Code, nil
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (p *PhonePe) do(req *http.Request, v any) error {
	res, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= 500 {
		return fmt.Errorf("gateway returned %d: %s", res.StatusCode, body)
	}
	return json.Unmarshal(body, v)
}
