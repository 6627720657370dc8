package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func value(amount, currency string) MonetaryValue {
	return MonetaryValue{Amount: decimal.RequireFromString(amount), Currency: currency}
}

func TestMonetaryValue_Equal(t *testing.T) {
	assert.True(t, value("2.50", "USD").Equal(value("2.5", "USD")))
	assert.False(t, value("2.50", "USD").Equal(value("2.50", "EUR")))
	assert.False(t, value("2.50", "USD").Equal(value("2.51", "USD")))
	// No rounding tolerance, however small the difference.
	assert.False(t, value("2.500001", "USD").Equal(value("2.50", "USD")))
}

func TestMonetaryValue_Display(t *testing.T) {
	assert.Equal(t, "USD 2.50", value("2.5", "USD").Display())
	assert.Equal(t, "INR 1234.57", value("1234.567", "INR").Display())
}

func TestDisplayMonetary(t *testing.T) {
	v := value("2.50", "USD")
	assert.Equal(t, "USD 2.50", DisplayMonetary(&v))
	assert.Equal(t, NotAvailableDisplay, DisplayMonetary(nil))

	noCurrency := MonetaryValue{Amount: decimal.NewFromInt(5)}
	assert.Equal(t, NotAvailableDisplay, DisplayMonetary(&noCurrency))
}
