// Package fees resolves gateway and plan fee schedules whose fields are
// configured either as one scalar for all currencies or as a per-currency
// map. Resolution is pure: the same schedule, field and currency always
// produce the same value, so a quote shown before a deposit matches the fee
// applied when the settlement lands.
package fees

import (
	"github.com/shopspring/decimal"

	"github.com/dmarkhas/walletengine/internal/domain"
)

// fallbackCurrencies is scanned in order when a per-currency map has no entry
// for the requested currency. The first present non-zero entry wins; if every
// present entry is zero, the first present one wins.
var fallbackCurrencies = []string{"USD", "EUR", "GBP", "NGN", "USDT", "BTC", "ETH"}

// Resolve returns the configured value for a fee or minimum field. An empty
// value resolves to zero.
func Resolve(v domain.FeeValue, currency string) decimal.Decimal {
	if r := resolve(v, currency); r != nil {
		return *r
	}
	return decimal.Zero
}

// ResolveLimit returns the configured value for a bound field, or nil when
// the field is empty and the bound is unbounded.
func ResolveLimit(v domain.FeeValue, currency string) *decimal.Decimal {
	return resolve(v, currency)
}

func resolve(v domain.FeeValue, currency string) *decimal.Decimal {
	if v.Scalar != nil {
		r := *v.Scalar
		return &r
	}
	if len(v.PerCurrency) == 0 {
		return nil
	}
	if r, ok := v.PerCurrency[currency]; ok {
		return &r
	}

	var firstPresent *decimal.Decimal
	for _, code := range fallbackCurrencies {
		r, ok := v.PerCurrency[code]
		if !ok {
			continue
		}
		if !r.IsZero() {
			return &r
		}
		if firstPresent == nil {
			v := r
			firstPresent = &v
		}
	}
	if firstPresent != nil {
		return firstPresent
	}
	return nil
}

// Quote is the fee breakdown for one amount in one currency. Fixed and
// Percentage are kept separate so a caller can charge the fee out of the
// gross amount or on top of it.
type Quote struct {
	Fixed      decimal.Decimal
	Percentage decimal.Decimal
	Total      decimal.Decimal
}

// QuoteFor computes the platform fee for amount in currency against a gateway
// schedule: amount * percentageFee/100 + fixedFee, rounded to the currency's
// precision.
func QuoteFor(g *domain.Gateway, currency string, amount decimal.Decimal) Quote {
	fixed := Resolve(g.FixedFee, currency)
	pct := Resolve(g.PercentageFee, currency)

	pctPart := amount.Mul(pct).Div(decimal.NewFromInt(100))
	q := Quote{
		Fixed:      fixed,
		Percentage: pctPart,
	}
	q.Total = domain.RoundAmount(fixed.Add(pctPart), currency)
	return q
}

// WithinLimits reports whether an amount passes the schedule's min/max bounds
// for a currency. A missing max is unbounded.
func WithinLimits(min, max domain.FeeValue, currency string, amount decimal.Decimal) bool {
	if amount.LessThan(Resolve(min, currency)) {
		return false
	}
	if upper := ResolveLimit(max, currency); upper != nil && amount.GreaterThan(*upper) {
		return false
	}
	return true
}
