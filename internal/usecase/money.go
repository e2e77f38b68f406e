package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money は常に小数2桁の文字列で JSON に出す金額。
type Money decimal.Decimal

func NewMoney(d decimal.Decimal) Money {
	return Money(d)
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

func (m Money) String() string {
	return decimal.Decimal(m).StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// "12.30" と 12.3 の両方を受け付ける
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("invalid money %q: %w", b, err)
	}
	*m = Money(d)
	return nil
}
