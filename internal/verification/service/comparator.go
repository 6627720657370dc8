package service

import (
	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// CompareLineItem runs the per-field comparison rules for one line item
// against its matched catalog entry. With a matched entry it produces
// exactly two differences (HS code, unit price); with no entry it
// produces exactly one missing_in_reference difference for the lookup
// itself. It is total over well-formed input: nil optional fields render
// as "N/A" instead of failing.
func CompareLineItem(item model.ChecklistLineItem, entry *model.CatalogEntry) []model.Difference {
	if entry == nil {
		return []model.Difference{{
			Field:          model.FieldNameProductLookup,
			ChecklistValue: item.Description,
			ReferenceValue: model.NotFoundDisplay,
			Status:         model.FieldMissingInReference,
		}}
	}

	differences := make([]model.Difference, 0, 2)

	hsStatus := model.FieldMatch
	if item.HSCode != entry.HSCode {
		hsStatus = model.FieldMismatch
	}
	differences = append(differences, model.Difference{
		Field:          model.FieldNameHSCode,
		ChecklistValue: item.HSCode,
		ReferenceValue: entry.HSCode,
		Status:         hsStatus,
	})

	priceStatus := model.FieldMatch
	if item.UnitPrice == nil || !item.UnitPrice.Equal(entry.UnitPrice) {
		priceStatus = model.FieldMismatch
	}
	differences = append(differences, model.Difference{
		Field:          model.FieldNameUnitPrice,
		ChecklistValue: model.DisplayMonetary(item.UnitPrice),
		ReferenceValue: entry.UnitPrice.Display(),
		Status:         priceStatus,
	})

	return differences
}
