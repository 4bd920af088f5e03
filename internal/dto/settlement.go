package dto

import "github.com/shopspring/decimal"

type PaymentLineItemDTO struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type PaymentWebhookRequestDTO struct {
	ExternalID string               `json:"external_id" example:"pi_3MtwBwLkdIwHu7ix28a3tqPa"`
	Status     string               `json:"status" example:"succeeded"`
	UserID     int                  `json:"user_id" example:"42"`
	Gateway    string               `json:"gateway" example:"stripe"`
	Amount     decimal.Decimal      `json:"amount" example:"100"`
	Currency   string               `json:"currency" example:"USD"`
	LineItems  []PaymentLineItemDTO `json:"line_items,omitempty"`
}

type SettlementResponseDTO struct {
	Status        string          `json:"status" example:"processed"`
	TransactionID int             `json:"transaction_id,omitempty" example:"17"`
	ReferenceID   string          `json:"reference_id,omitempty" example:"pi_3MtwBwLkdIwHu7ix28a3tqPa"`
	NewBalance    decimal.Decimal `json:"new_balance" example:"96.8"`
}
