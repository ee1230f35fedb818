package gateway

import (
	"context"
	"errors"
)

// Status codes reported by the gateway. Anything else is a failure.
const (
	CodeSuccess = "PAYMENT_SUCCESS"
	CodePending = "PAYMENT_PENDING"
)

var ErrNoRedirectURL = errors.New("gateway response missing redirect url")

type InitiateRequest struct {
	TransactionID string
	// AmountPaise is in minor units; the caller owns the scaling.
	AmountPaise int64
}

// Client is the boundary to the hosted payment processor.
type Client interface {
	// Initiate registers the payment and returns the hosted checkout URL.
	Initiate(ctx context.Context, req InitiateRequest) (redirectURL string, err error)
	// Status returns the gateway's current code for the transaction.
	Status(ctx context.Context, transactionID string) (code string, err error)
}
