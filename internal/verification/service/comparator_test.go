package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

func money(amount, currency string) *model.MonetaryValue {
	return &model.MonetaryValue{Amount: decimal.RequireFromString(amount), Currency: currency}
}

func TestCompareLineItem_AllMatch(t *testing.T) {
	item := model.ChecklistLineItem{
		Description: "Steel Bolts M8",
		HSCode:      "7318.16",
		UnitPrice:   money("2.50", "USD"),
	}
	entry := &model.CatalogEntry{Name: "STEEL_BOLTS", HSCode: "7318.16", UnitPrice: *money("2.5", "USD")}

	diffs := CompareLineItem(item, entry)
	require.Len(t, diffs, 2)

	assert.Equal(t, model.FieldNameHSCode, diffs[0].Field)
	assert.Equal(t, model.FieldMatch, diffs[0].Status)
	assert.Equal(t, model.FieldNameUnitPrice, diffs[1].Field)
	assert.Equal(t, model.FieldMatch, diffs[1].Status)
	assert.Equal(t, "USD 2.50", diffs[1].ReferenceValue)
}

func TestCompareLineItem_HSCodeMismatch(t *testing.T) {
	item := model.ChecklistLineItem{
		Description: "Steel Bolts M8",
		HSCode:      "7318.15",
		UnitPrice:   money("2.50", "USD"),
	}
	entry := &model.CatalogEntry{Name: "STEEL_BOLTS", HSCode: "7318.16", UnitPrice: *money("2.50", "USD")}

	diffs := CompareLineItem(item, entry)
	require.Len(t, diffs, 2)
	assert.Equal(t, model.FieldMismatch, diffs[0].Status)
	assert.Equal(t, "7318.15", diffs[0].ChecklistValue)
	assert.Equal(t, "7318.16", diffs[0].ReferenceValue)
	assert.Equal(t, model.FieldMatch, diffs[1].Status)
}

func TestCompareLineItem_CurrencyDifferenceIsMismatch(t *testing.T) {
	item := model.ChecklistLineItem{
		Description: "Steel Bolts M8",
		HSCode:      "7318.16",
		UnitPrice:   money("2.50", "EUR"),
	}
	entry := &model.CatalogEntry{Name: "STEEL_BOLTS", HSCode: "7318.16", UnitPrice: *money("2.50", "USD")}

	diffs := CompareLineItem(item, entry)
	require.Len(t, diffs, 2)
	assert.Equal(t, model.FieldMismatch, diffs[1].Status)
}

func TestCompareLineItem_NilUnitPrice(t *testing.T) {
	item := model.ChecklistLineItem{
		Description: "Steel Bolts M8",
		HSCode:      "7318.16",
	}
	entry := &model.CatalogEntry{Name: "STEEL_BOLTS", HSCode: "7318.16", UnitPrice: *money("2.50", "USD")}

	diffs := CompareLineItem(item, entry)
	require.Len(t, diffs, 2)
	assert.Equal(t, model.FieldMismatch, diffs[1].Status)
	assert.Equal(t, model.NotAvailableDisplay, diffs[1].ChecklistValue)
}

func TestCompareLineItem_NoCatalogEntry(t *testing.T) {
	item := model.ChecklistLineItem{
		Description: "Widget XYZ-9",
		HSCode:      "8479.89",
		UnitPrice:   money("12.00", "USD"),
	}

	diffs := CompareLineItem(item, nil)
	require.Len(t, diffs, 1)
	assert.Equal(t, model.FieldNameProductLookup, diffs[0].Field)
	assert.Equal(t, "Widget XYZ-9", diffs[0].ChecklistValue)
	assert.Equal(t, model.NotFoundDisplay, diffs[0].ReferenceValue)
	assert.Equal(t, model.FieldMissingInReference, diffs[0].Status)
}
