package service

import (
	"strings"

	"github.com/opencustoms/boe-copilot/internal/profile"
	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// VerifySummary compares the record's identity fields against the saved
// importer profile. A nil profile (never saved, or still loading) reports
// every field as not_available; it is never silently treated as empty
// values to mismatch against. Comparison is exact string equality after
// trimming leading/trailing whitespace only: internal whitespace and case
// differences stay mismatches.
func VerifySummary(record *model.ChecklistRecord, saved *profile.ImporterProfile) model.SummaryStatusSet {
	statuses := make(model.SummaryStatusSet, len(model.AllSummaryFields))
	if record == nil || saved == nil {
		for _, f := range model.AllSummaryFields {
			statuses[f] = model.SummaryNotAvailable
		}
		return statuses
	}
	for _, f := range model.AllSummaryFields {
		checklistValue, savedValue := summaryFieldValues(f, record, saved)
		if strings.TrimSpace(checklistValue) == strings.TrimSpace(savedValue) {
			statuses[f] = model.SummaryMatch
		} else {
			statuses[f] = model.SummaryMismatch
		}
	}
	return statuses
}

// summaryFieldValues returns the checklist-side and profile-side values
// for one summary field. A nil profile yields empty profile-side values.
func summaryFieldValues(f model.SummaryField, record *model.ChecklistRecord, saved *profile.ImporterProfile) (string, string) {
	if saved == nil {
		saved = &profile.ImporterProfile{}
	}
	switch f {
	case model.SummaryFieldImporterName:
		return record.ImporterName, saved.ImporterName
	case model.SummaryFieldIECNumber:
		return record.IECNumber, saved.IECNumber
	case model.SummaryFieldGSTIN:
		return record.GSTIN, saved.GSTIN
	case model.SummaryFieldADCode:
		return record.ADCode, saved.ADCode
	}
	return "", ""
}
