package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

func usd(s string) model.MonetaryValue {
	return model.MonetaryValue{Amount: decimal.RequireFromString(s), Currency: "USD"}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"upper-cases", "steel bolts", "STEEL_BOLTS"},
		{"collapses separator runs", "Steel -- Bolts!!M8", "STEEL_BOLTS_M8"},
		{"keeps digits", "Widget XYZ-9", "WIDGET_XYZ_9"},
		{"leading and trailing runs", "  (Steel) ", "_STEEL_"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{"Steel Bolts M8", "STEEL_BOLTS", "Widget XYZ-9", "copper wire 2.5mm"}
	for _, input := range inputs {
		once := NormalizeName(input)
		assert.Equal(t, once, NormalizeName(once), "normalizing %q twice must be stable", input)
	}
}

func TestFind_SubstringMatch(t *testing.T) {
	entries := []model.CatalogEntry{
		{Name: "STEEL_BOLTS", HSCode: "7318.16", UnitPrice: usd("2.50")},
	}

	entry := Find("Steel Bolts M8", entries)
	assert.NotNil(t, entry)
	assert.Equal(t, "STEEL_BOLTS", entry.Name)
}

func TestFind_FirstMatchWins(t *testing.T) {
	entries := []model.CatalogEntry{
		{Name: "BOLTS", HSCode: "7318.15", UnitPrice: usd("1.00")},
		{Name: "STEEL_BOLTS", HSCode: "7318.16", UnitPrice: usd("2.50")},
		{Name: "BOLTS", HSCode: "9999.99", UnitPrice: usd("9.99")},
	}

	// Both "BOLTS" entries and "STEEL_BOLTS" match; catalog order decides.
	for range 10 {
		entry := Find("Steel Bolts M8", entries)
		assert.NotNil(t, entry)
		assert.Equal(t, "7318.15", entry.HSCode)
	}
}

func TestFind_NoMatchReturnsNil(t *testing.T) {
	entries := []model.CatalogEntry{
		{Name: "COPPER_WIRE", HSCode: "7408.11", UnitPrice: usd("4.20")},
	}

	assert.Nil(t, Find("Widget XYZ-9", entries))
	assert.Nil(t, Find("Widget XYZ-9", nil))
}
