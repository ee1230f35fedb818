package models

import (
	"strings"
	"time"

	"github.com/swiftpay/wallet-backend/internal/api/validate"
)

type User struct {
	ID           string    `json:"id"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	phone := strings.TrimSpace(u.Phone)
	if len(phone) < 10 {
		return validate.Errs{{Field: "phone_number", Msg: "invalid phone number"}}
	}
	if !strings.HasPrefix(phone, "+") {
		return validate.Errs{{Field: "phone_number", Msg: "must be E.164 formatted"}}
	}
	return nil
}
