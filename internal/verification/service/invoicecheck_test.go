package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

func TestCalculateInvoiceValue_Match(t *testing.T) {
	record := &model.ChecklistRecord{
		InvoiceValue: money("25.00", "USD"),
		Items: []model.ChecklistLineItem{
			{Description: "Steel Bolts M8", Quantity: 10, UnitPrice: money("2.50", "USD")},
		},
	}

	check := CalculateInvoiceValue(record)
	assert.Equal(t, model.InvoiceCheckMatch, check.State)
	require.NotNil(t, check.CalculatedTotal)
	assert.Equal(t, "USD 25.00", check.CalculatedTotal.Display())
}

func TestCalculateInvoiceValue_WithinTolerance(t *testing.T) {
	record := &model.ChecklistRecord{
		InvoiceValue: money("25.005", "USD"),
		Items: []model.ChecklistLineItem{
			{Quantity: 10, UnitPrice: money("2.50", "USD")},
		},
	}

	check := CalculateInvoiceValue(record)
	assert.Equal(t, model.InvoiceCheckMatch, check.State)
}

func TestCalculateInvoiceValue_ExactlyAtToleranceIsMismatch(t *testing.T) {
	record := &model.ChecklistRecord{
		InvoiceValue: money("25.01", "USD"),
		Items: []model.ChecklistLineItem{
			{Quantity: 10, UnitPrice: money("2.50", "USD")},
		},
	}

	check := CalculateInvoiceValue(record)
	assert.Equal(t, model.InvoiceCheckMismatch, check.State)
}

func TestCalculateInvoiceValue_CurrencyDifferenceIsMismatch(t *testing.T) {
	record := &model.ChecklistRecord{
		InvoiceValue: money("25.00", "EUR"),
		Items: []model.ChecklistLineItem{
			{Quantity: 10, UnitPrice: money("2.50", "USD")},
		},
	}

	check := CalculateInvoiceValue(record)
	assert.Equal(t, model.InvoiceCheckMismatch, check.State)
}

func TestCalculateInvoiceValue_MixedCurrencies(t *testing.T) {
	record := &model.ChecklistRecord{
		InvoiceValue: money("100.00", "USD"),
		Items: []model.ChecklistLineItem{
			{Quantity: 10, UnitPrice: money("2.50", "USD")},
			{Quantity: 5, UnitPrice: money("15.00", "EUR")},
		},
	}

	check := CalculateInvoiceValue(record)
	assert.Equal(t, model.InvoiceCheckMixedCurrencies, check.State)
	assert.Nil(t, check.CalculatedTotal)
}

func TestCalculateInvoiceValue_MissingItemPrice(t *testing.T) {
	record := &model.ChecklistRecord{
		InvoiceValue: money("100.00", "USD"),
		Items: []model.ChecklistLineItem{
			{Quantity: 10, UnitPrice: money("2.50", "USD")},
			{Quantity: 5},
		},
	}

	check := CalculateInvoiceValue(record)
	assert.Equal(t, model.InvoiceCheckMissingPrices, check.State)
}

func TestCalculateInvoiceValue_NoItems(t *testing.T) {
	check := CalculateInvoiceValue(&model.ChecklistRecord{})
	assert.Equal(t, model.InvoiceCheckNotApplicable, check.State)
	assert.Equal(t, model.NotAvailableDisplay, check.Display)

	check = CalculateInvoiceValue(nil)
	assert.Equal(t, model.InvoiceCheckNotApplicable, check.State)
}

func TestCalculateInvoiceValue_NoDeclaredValueIsMismatch(t *testing.T) {
	record := &model.ChecklistRecord{
		Items: []model.ChecklistLineItem{
			{Quantity: 10, UnitPrice: money("2.50", "USD")},
		},
	}

	check := CalculateInvoiceValue(record)
	assert.Equal(t, model.InvoiceCheckMismatch, check.State)
	require.NotNil(t, check.CalculatedTotal)
	assert.Nil(t, check.DeclaredValue)
}
