package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInvestmentRequestDTO struct {
	PlanID     int             `json:"plan_id" example:"3"`
	DurationID int             `json:"duration_id" example:"7"`
	Amount     decimal.Decimal `json:"amount" example:"50"`
}

type InvestmentResponseDTO struct {
	ID        string          `json:"id" example:"2b1a7f3e-9c41-4e56-b1f0-4f1f2f9d8f11"`
	PlanID    int             `json:"plan_id" example:"3"`
	Amount    decimal.Decimal `json:"amount" example:"50"`
	Profit    decimal.Decimal `json:"profit" example:"5"`
	Status    string          `json:"status" example:"ACTIVE"`
	EndDate   time.Time       `json:"end_date"`
	CreatedAt time.Time       `json:"created_at"`
}

type SweepResponseDTO struct {
	Swept  int `json:"swept" example:"12"`
	Failed int `json:"failed" example:"0"`
}
