package service

import (
	"github.com/opencustoms/boe-copilot/internal/catalog"
	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// VerifyRecord reconciles every line item of the record against the
// catalog, producing one result per item in item order. An item's
// aggregate status is review_needed as soon as any of its differences is
// not a match.
func VerifyRecord(record *model.ChecklistRecord, entries []model.CatalogEntry) []model.ItemResult {
	if record == nil {
		return nil
	}
	results := make([]model.ItemResult, 0, len(record.Items))
	for _, item := range record.Items {
		entry := catalog.Find(item.Description, entries)
		differences := CompareLineItem(item, entry)

		status := model.OverallOK
		for _, d := range differences {
			if d.Status != model.FieldMatch {
				status = model.OverallReviewNeeded
				break
			}
		}

		results = append(results, model.ItemResult{
			Item:          item,
			MatchedEntry:  entry,
			Differences:   differences,
			OverallStatus: status,
		})
	}
	return results
}
