package service

import (
	"github.com/shopspring/decimal"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// invoiceTolerance is the absolute tolerance for the declared-vs-calculated
// invoice value comparison. Monetary equality elsewhere stays exact; the
// tolerance exists only for this sum check.
var invoiceTolerance = decimal.NewFromFloat(0.01)

// CalculateInvoiceValue sums quantity x unit price across all items and
// compares the total against the record's declared invoice value. The sum
// is only meaningful when every item prices in the same currency: mixed
// currencies and missing price data are reported as their own
// non-comparable states. The result is informational and never gates
// approval readiness.
func CalculateInvoiceValue(record *model.ChecklistRecord) model.InvoiceCheck {
	if record == nil || len(record.Items) == 0 {
		return model.InvoiceCheck{
			State:   model.InvoiceCheckNotApplicable,
			Display: model.NotAvailableDisplay,
		}
	}

	for _, item := range record.Items {
		if item.UnitPrice == nil || item.UnitPrice.Currency == "" {
			return model.InvoiceCheck{
				State:         model.InvoiceCheckMissingPrices,
				DeclaredValue: record.InvoiceValue,
				Display:       "Missing item price data",
			}
		}
	}

	currency := record.Items[0].UnitPrice.Currency
	for _, item := range record.Items[1:] {
		if item.UnitPrice.Currency != currency {
			return model.InvoiceCheck{
				State:         model.InvoiceCheckMixedCurrencies,
				DeclaredValue: record.InvoiceValue,
				Display:       "Mixed currencies in items",
			}
		}
	}

	total := decimal.Zero
	for _, item := range record.Items {
		total = total.Add(decimal.NewFromFloat(item.Quantity).Mul(item.UnitPrice.Amount))
	}
	calculated := model.MonetaryValue{Amount: total, Currency: currency}

	state := model.InvoiceCheckMismatch
	if record.InvoiceValue != nil &&
		record.InvoiceValue.Currency == currency &&
		record.InvoiceValue.Amount.Sub(total).Abs().LessThan(invoiceTolerance) {
		state = model.InvoiceCheckMatch
	}

	return model.InvoiceCheck{
		State:           state,
		CalculatedTotal: &calculated,
		DeclaredValue:   record.InvoiceValue,
		Display:         calculated.Display(),
	}
}
