package models

import (
	"time"

	"github.com/swiftpay/wallet-backend/internal/api/validate"
)

type BankAccount struct {
	ID            string    `json:"id"`
	AccountHolder string    `json:"account_holder"`
	AccountNumber string    `json:"account_number"`
	IFSCCode      string    `json:"ifsc_code"`
	Balance       int64     `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (a *BankAccount) Validate() error {
	var errs validate.Errs
	if e := validate.Required("account_holder", a.AccountHolder); e != nil {
		errs = append(errs, *e)
	}
	if e := validate.Required("account_number", a.AccountNumber); e != nil {
		errs = append(errs, *e)
	}
	if e := validate.Required("ifsc_code", a.IFSCCode); e != nil {
		errs = append(errs, *e)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
