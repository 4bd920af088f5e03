package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FeeValue is a gateway or plan limit field that admins configure either as a
// single scalar applying to every currency or as a per-currency map. Exactly
// one of Scalar and PerCurrency is set; an empty value has neither.
type FeeValue struct {
	Scalar      *decimal.Decimal
	PerCurrency map[string]decimal.Decimal
}

func ScalarFee(v decimal.Decimal) FeeValue {
	return FeeValue{Scalar: &v}
}

func PerCurrencyFee(m map[string]decimal.Decimal) FeeValue {
	return FeeValue{PerCurrency: m}
}

func (v FeeValue) IsEmpty() bool {
	return v.Scalar == nil && len(v.PerCurrency) == 0
}

func (v *FeeValue) UnmarshalJSON(data []byte) error {
	*v = FeeValue{}
	if string(data) == "null" {
		return nil
	}

	var scalar decimal.Decimal
	if err := json.Unmarshal(data, &scalar); err == nil {
		v.Scalar = &scalar
		return nil
	}

	var perCurrency map[string]decimal.Decimal
	if err := json.Unmarshal(data, &perCurrency); err != nil {
		return fmt.Errorf("fee value is neither scalar nor per-currency map: %w", err)
	}
	v.PerCurrency = perCurrency
	return nil
}

func (v FeeValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Scalar != nil:
		return json.Marshal(v.Scalar)
	case v.PerCurrency != nil:
		return json.Marshal(v.PerCurrency)
	default:
		return []byte("null"), nil
	}
}
