package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletResponseDTO struct {
	ID       int             `json:"id" example:"1"`
	Type     string          `json:"type" example:"FIAT"`
	Currency string          `json:"currency" example:"USD"`
	Balance  decimal.Decimal `json:"balance" example:"96.8"`
	InOrder  decimal.Decimal `json:"in_order" example:"0"`
	Status   string          `json:"status" example:"ACTIVE"`
}

type TransactionResponseDTO struct {
	ID          int             `json:"id" example:"17"`
	WalletID    int             `json:"wallet_id" example:"1"`
	Type        string          `json:"type" example:"DEPOSIT"`
	Amount      decimal.Decimal `json:"amount" example:"96.8"`
	Fee         decimal.Decimal `json:"fee" example:"3.2"`
	Status      string          `json:"status" example:"COMPLETED"`
	ReferenceID string          `json:"reference_id" example:"pi_3MtwBwLkdIwHu7ix28a3tqPa"`
	Description string          `json:"description" example:"Deposit via stripe"`
	CreatedAt   time.Time       `json:"created_at"`
}
