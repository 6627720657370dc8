package model

import (
	"github.com/shopspring/decimal"
)

// NotAvailableDisplay is the display value used wherever an optional
// monetary or numeric field is absent from the extracted checklist.
const NotAvailableDisplay = "N/A"

// MonetaryValue is a numeric amount tagged with its currency code.
// Values are produced by extraction or catalog import and are never
// mutated afterwards.
type MonetaryValue struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"` // e.g. "USD", "EUR", "INR"
}

// Equal reports whether two monetary values are identical: the currency
// codes must match exactly and the amounts must match exactly. There is
// no cross-currency coercion and no rounding tolerance.
func (m MonetaryValue) Equal(other MonetaryValue) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// Display renders the value as "<currency> <amount>" with two decimal
// places, e.g. "USD 2.50".
func (m MonetaryValue) Display() string {
	return m.Currency + " " + m.Amount.StringFixed(2)
}

// DisplayMonetary renders an optional monetary value, falling back to
// NotAvailableDisplay when the value or its currency is missing.
func DisplayMonetary(m *MonetaryValue) string {
	if m == nil || m.Currency == "" {
		return NotAvailableDisplay
	}
	return m.Display()
}
