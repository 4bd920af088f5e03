package domain

import "github.com/shopspring/decimal"

// Gateway is the fee schedule of one external payment gateway. The engine
// only reads these; the admin collaborator owns their CRUD.
type Gateway struct {
	ID            int      `db:"id"`
	Name          string   `db:"name"`
	Currencies    []string `db:"currencies"`
	FixedFee      FeeValue `db:"fixed_fee"`
	PercentageFee FeeValue `db:"percentage_fee"`
	MinAmount     FeeValue `db:"min_amount"`
	MaxAmount     FeeValue `db:"max_amount"`
	Status        string   `db:"status"`
}

// SupportsCurrency reports whether the gateway accepts a currency. An empty
// allow-list accepts everything.
func (g *Gateway) SupportsCurrency(currency string) bool {
	if len(g.Currencies) == 0 {
		return true
	}
	for _, c := range g.Currencies {
		if c == currency {
			return true
		}
	}
	return false
}

type InvestmentPlan struct {
	ID               int             `db:"id"`
	Name             string          `db:"name"`
	MinAmount        FeeValue        `db:"min_amount"`
	MaxAmount        FeeValue        `db:"max_amount"`
	ProfitPercentage decimal.Decimal `db:"profit_percentage"`
	Currency         string          `db:"currency"`
	WalletType       string          `db:"wallet_type"`
	Status           string          `db:"status"`
}

type PlanDuration struct {
	ID        int    `db:"id"`
	PlanID    int    `db:"plan_id"`
	Duration  int    `db:"duration"`
	Timeframe string `db:"timeframe"`
}
