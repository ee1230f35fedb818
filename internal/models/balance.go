package models

import "time"

// Balance is the wallet balance for one user, in paise.
type Balance struct {
	UserID        string    `json:"user_id"`
	Amount        int64     `json:"amount"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}
