package models

import "github.com/shopspring/decimal"

// CurrencyUnit says how the provider quotes a holding's price. London-listed
// instruments are often quoted in pence.
type CurrencyUnit string

const (
	CurrencyUnitPounds CurrencyUnit = "pounds"
	CurrencyUnitPence  CurrencyUnit = "pence"
)

var hundred = decimal.NewFromInt(100)

// Holding is a stock position inside a SIPP pension.
type Holding struct {
	Base
	PensionID    string          `gorm:"type:uuid;not null;uniqueIndex:idx_holding_pension_ticker" json:"pension_id"`
	Ticker       string          `gorm:"size:10;not null;uniqueIndex:idx_holding_pension_ticker" json:"ticker"`
	Shares       decimal.Decimal `gorm:"type:numeric(18,6);not null" json:"shares"`
	CurrencyUnit CurrencyUnit    `gorm:"not null;default:pounds" json:"currency_unit"`
}

// Value returns shares times price, converting pence-quoted prices to pounds.
func (h *Holding) Value(price decimal.Decimal) decimal.Decimal {
	v := h.Shares.Mul(price)
	if h.CurrencyUnit == CurrencyUnitPence {
		v = v.Div(hundred)
	}
	return v
}
