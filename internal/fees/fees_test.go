package fees

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dmarkhas/walletengine/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		value    domain.FeeValue
		currency string
		expected decimal.Decimal
	}{
		{
			name:     "Empty value resolves to zero",
			value:    domain.FeeValue{},
			currency: "USD",
			expected: decimal.Zero,
		},
		{
			name:     "Scalar applies to any currency",
			value:    domain.ScalarFee(dec("2.5")),
			currency: "BTC",
			expected: dec("2.5"),
		},
		{
			name: "Per-currency map exact match",
			value: domain.PerCurrencyFee(map[string]decimal.Decimal{
				"USD": dec("1"),
				"NGN": dec("500"),
			}),
			currency: "NGN",
			expected: dec("500"),
		},
		{
			name: "Missing currency falls back to first non-zero in priority order",
			value: domain.PerCurrencyFee(map[string]decimal.Decimal{
				"USD": dec("0"),
				"EUR": dec("1.5"),
			}),
			currency: "JPY",
			expected: dec("1.5"),
		},
		{
			name: "All present entries zero falls back to first present",
			value: domain.PerCurrencyFee(map[string]decimal.Decimal{
				"EUR": dec("0"),
				"GBP": dec("0"),
			}),
			currency: "JPY",
			expected: dec("0"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.value, tt.currency)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	value := domain.PerCurrencyFee(map[string]decimal.Decimal{
		"USD": dec("0"),
		"EUR": dec("2"),
		"GBP": dec("3"),
	})

	first := Resolve(value, "JPY")
	for i := 0; i < 100; i++ {
		assert.True(t, first.Equal(Resolve(value, "JPY")))
	}
}

func TestResolveLimit(t *testing.T) {
	tests := []struct {
		name     string
		value    domain.FeeValue
		currency string
		expected *decimal.Decimal
	}{
		{
			name:     "Empty value is unbounded",
			value:    domain.FeeValue{},
			currency: "USD",
			expected: nil,
		},
		{
			name:     "Scalar bound",
			value:    domain.ScalarFee(dec("1000")),
			currency: "USD",
			expected: func() *decimal.Decimal { d := dec("1000"); return &d }(),
		},
		{
			name: "Map with no resolvable entry is unbounded",
			value: domain.PerCurrencyFee(map[string]decimal.Decimal{
				"XAU": dec("10"),
			}),
			currency: "USD",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLimit(tt.value, tt.currency)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.True(t, tt.expected.Equal(*got))
			}
		})
	}
}

func TestQuoteFor(t *testing.T) {
	tests := []struct {
		name     string
		gateway  *domain.Gateway
		currency string
		amount   decimal.Decimal
		total    decimal.Decimal
	}{
		{
			name: "Percentage plus fixed, rounded to currency precision",
			gateway: &domain.Gateway{
				FixedFee:      domain.ScalarFee(dec("0.30")),
				PercentageFee: domain.ScalarFee(dec("2.9")),
			},
			currency: "USD",
			amount:   dec("100"),
			total:    dec("3.20"),
		},
		{
			name: "No fees configured quotes zero",
			gateway: &domain.Gateway{
				FixedFee:      domain.FeeValue{},
				PercentageFee: domain.FeeValue{},
			},
			currency: "USD",
			amount:   dec("100"),
			total:    dec("0"),
		},
		{
			name: "Per-currency schedule",
			gateway: &domain.Gateway{
				FixedFee: domain.PerCurrencyFee(map[string]decimal.Decimal{
					"USD": dec("0.30"),
					"NGN": dec("100"),
				}),
				PercentageFee: domain.ScalarFee(dec("1.5")),
			},
			currency: "NGN",
			amount:   dec("10000"),
			total:    dec("250"),
		},
		{
			name: "Crypto precision kept",
			gateway: &domain.Gateway{
				FixedFee:      domain.FeeValue{},
				PercentageFee: domain.ScalarFee(dec("0.1")),
			},
			currency: "BTC",
			amount:   dec("0.5"),
			total:    dec("0.0005"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuoteFor(tt.gateway, tt.currency, tt.amount)
			assert.True(t, tt.total.Equal(q.Total), "expected %s, got %s", tt.total, q.Total)
		})
	}
}

func TestWithinLimits(t *testing.T) {
	tests := []struct {
		name     string
		min      domain.FeeValue
		max      domain.FeeValue
		currency string
		amount   decimal.Decimal
		ok       bool
	}{
		{
			name:     "No bounds accepts anything",
			currency: "USD",
			amount:   dec("1000000"),
			ok:       true,
		},
		{
			name:     "Below minimum rejected",
			min:      domain.ScalarFee(dec("10")),
			currency: "USD",
			amount:   dec("9.99"),
			ok:       false,
		},
		{
			name:     "At minimum accepted",
			min:      domain.ScalarFee(dec("10")),
			currency: "USD",
			amount:   dec("10"),
			ok:       true,
		},
		{
			name:     "Above maximum rejected",
			max:      domain.ScalarFee(dec("1000")),
			currency: "USD",
			amount:   dec("1000.01"),
			ok:       false,
		},
		{
			name:     "At maximum accepted",
			max:      domain.ScalarFee(dec("1000")),
			currency: "USD",
			amount:   dec("1000"),
			ok:       true,
		},
		{
			name: "Per-currency bounds",
			min: domain.PerCurrencyFee(map[string]decimal.Decimal{
				"USD": dec("10"),
				"NGN": dec("5000"),
			}),
			currency: "NGN",
			amount:   dec("4999"),
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, WithinLimits(tt.min, tt.max, tt.currency, tt.amount))
		})
	}
}
