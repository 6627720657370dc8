package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

func TestVerifyRecord_PerItemResultsInOrder(t *testing.T) {
	entries := []model.CatalogEntry{
		{Name: "STEEL_BOLTS", HSCode: "7318.16", UnitPrice: *money("2.50", "USD")},
		{Name: "COPPER_WIRE", HSCode: "7408.11", UnitPrice: *money("4.20", "USD")},
	}
	record := &model.ChecklistRecord{
		Items: []model.ChecklistLineItem{
			{Description: "Steel Bolts M8", HSCode: "7318.16", UnitPrice: money("2.50", "USD")},
			{Description: "Copper Wire 2.5mm", HSCode: "7408.19", UnitPrice: money("4.20", "USD")},
			{Description: "Widget XYZ-9", HSCode: "8479.89", UnitPrice: money("12.00", "USD")},
		},
	}

	results := VerifyRecord(record, entries)
	require.Len(t, results, 3)

	assert.Equal(t, "Steel Bolts M8", results[0].Item.Description)
	assert.Equal(t, model.OverallOK, results[0].OverallStatus)
	require.NotNil(t, results[0].MatchedEntry)
	assert.Equal(t, "STEEL_BOLTS", results[0].MatchedEntry.Name)

	// HS code mismatch flags the item even though the price matches.
	assert.Equal(t, model.OverallReviewNeeded, results[1].OverallStatus)

	assert.Equal(t, model.OverallReviewNeeded, results[2].OverallStatus)
	assert.Nil(t, results[2].MatchedEntry)
	require.Len(t, results[2].Differences, 1)
	assert.Equal(t, model.FieldMissingInReference, results[2].Differences[0].Status)
}

func TestVerifyRecord_NilRecord(t *testing.T) {
	assert.Nil(t, VerifyRecord(nil, nil))
}

func TestVerifyRecord_EmptyItems(t *testing.T) {
	results := VerifyRecord(&model.ChecklistRecord{}, nil)
	assert.Empty(t, results)
}
