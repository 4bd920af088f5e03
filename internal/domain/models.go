package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet types.
const (
	FiatWallet   string = "FIAT"
	CryptoWallet string = "CRYPTO"
)

// Wallet statuses.
const (
	WalletActive   string = "ACTIVE"
	WalletInactive string = "INACTIVE"
)

// Transaction types.
const (
	DepositTransaction       string = "DEPOSIT"
	InvestmentTransaction    string = "INVESTMENT"
	InvestmentROITransaction string = "INVESTMENT_ROI"
)

// Transaction statuses.
const (
	TransactionCompleted string = "COMPLETED"
)

// Investment statuses. ACTIVE transitions to COMPLETED on maturity; a
// cancelled investment is hard-deleted, not transitioned.
const (
	InvestmentActive    string = "ACTIVE"
	InvestmentCompleted string = "COMPLETED"
)

// Duration timeframes.
const (
	TimeframeHour  string = "HOUR"
	TimeframeDay   string = "DAY"
	TimeframeWeek  string = "WEEK"
	TimeframeMonth string = "MONTH"
)

type Wallet struct {
	ID        int             `db:"id"`
	UserID    int             `db:"user_id"`
	Type      string          `db:"type"`
	Currency  string          `db:"currency"`
	Balance   decimal.Decimal `db:"balance"`
	InOrder   decimal.Decimal `db:"in_order"`
	Status    string          `db:"status"`
	Version   int64           `db:"version"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

type Transaction struct {
	ID          int             `db:"id"`
	UserID      int             `db:"user_id"`
	WalletID    int             `db:"wallet_id"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Fee         decimal.Decimal `db:"fee"`
	Status      string          `db:"status"`
	ReferenceID string          `db:"reference_id"`
	Description string          `db:"description"`
	Metadata    []byte          `db:"metadata"`
	CreatedAt   time.Time       `db:"created_at"`
}

type AdminProfit struct {
	ID            int             `db:"id"`
	TransactionID int             `db:"transaction_id"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	Type          string          `db:"type"`
	CreatedAt     time.Time       `db:"created_at"`
}

type Investment struct {
	ID          string          `db:"id"`
	UserID      int             `db:"user_id"`
	PlanID      int             `db:"plan_id"`
	DurationID  int             `db:"duration_id"`
	WalletID    int             `db:"wallet_id"`
	Amount      decimal.Decimal `db:"amount"`
	Profit      decimal.Decimal `db:"profit"`
	Status      string          `db:"status"`
	EndDate     time.Time       `db:"end_date"`
	CreatedAt   time.Time       `db:"created_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// currencyPrecision maps a currency code to the number of decimal places its
// balances are kept at. Unlisted codes fall back to two.
var currencyPrecision = map[string]int32{
	"USD":  2,
	"EUR":  2,
	"GBP":  2,
	"NGN":  2,
	"JPY":  0,
	"BTC":  8,
	"ETH":  8,
	"USDT": 6,
}

// CurrencyPrecision returns the declared decimal precision for a currency.
func CurrencyPrecision(currency string) int32 {
	if p, ok := currencyPrecision[currency]; ok {
		return p
	}
	return 2
}

// RoundAmount rounds an amount to the currency's declared precision.
func RoundAmount(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Round(CurrencyPrecision(currency))
}
