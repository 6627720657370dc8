package model

// FieldStatus classifies the comparison outcome for a single field.
type FieldStatus string

const (
	FieldMatch              FieldStatus = "match"
	FieldMismatch           FieldStatus = "mismatch"
	FieldMissingInReference FieldStatus = "missing_in_reference"
)

// Field names used in item differences. The disposition rules key off
// these, so they are shared constants rather than free-form strings.
const (
	FieldNameHSCode        = "HS Code"
	FieldNameUnitPrice     = "Unit Price"
	FieldNameProductLookup = "Product Lookup"
)

// NotFoundDisplay is the reference-side placeholder for a catalog lookup
// miss.
const NotFoundDisplay = "Not Found"

// Difference is the comparison result for one field of one line item.
// It is a pure value, recomputed on every verification pass.
type Difference struct {
	Field          string      `json:"field"`
	ChecklistValue string      `json:"checklistValue"`
	ReferenceValue string      `json:"referenceValue"`
	Status         FieldStatus `json:"status"`
}

// OverallStatus is the aggregate status of one item result.
type OverallStatus string

const (
	OverallOK           OverallStatus = "ok"
	OverallReviewNeeded OverallStatus = "review_needed"
)

// ItemResult is the verification outcome for one checklist line item.
// Results are index-addressed: the position in the result slice is the
// stable identity used for dispositions, since item numbers may be absent
// or duplicated.
type ItemResult struct {
	Item          ChecklistLineItem `json:"item"`
	MatchedEntry  *CatalogEntry     `json:"matchedEntry"`
	Differences   []Difference      `json:"differences"`
	OverallStatus OverallStatus     `json:"overallStatus"`
}

// HasDifference reports whether any difference in the result carries the
// given status.
func (r ItemResult) HasDifference(status FieldStatus) bool {
	for _, d := range r.Differences {
		if d.Status == status {
			return true
		}
	}
	return false
}

// HSCodeMismatch returns the HS-code difference when it is a mismatch,
// or nil.
func (r ItemResult) HSCodeMismatch() *Difference {
	for i, d := range r.Differences {
		if d.Field == FieldNameHSCode && d.Status == FieldMismatch {
			return &r.Differences[i]
		}
	}
	return nil
}

// SummaryField identifies one of the identity/compliance fields compared
// against the saved importer profile.
type SummaryField string

const (
	SummaryFieldImporterName SummaryField = "importerName"
	SummaryFieldIECNumber    SummaryField = "iecNumber"
	SummaryFieldGSTIN        SummaryField = "gstin"
	SummaryFieldADCode       SummaryField = "adCode"
)

// AllSummaryFields lists every summary field in display order.
var AllSummaryFields = []SummaryField{
	SummaryFieldImporterName,
	SummaryFieldIECNumber,
	SummaryFieldGSTIN,
	SummaryFieldADCode,
}

// Label returns the human-readable name used in correction notes.
func (f SummaryField) Label() string {
	switch f {
	case SummaryFieldImporterName:
		return "Importer Name"
	case SummaryFieldIECNumber:
		return "IEC Number"
	case SummaryFieldGSTIN:
		return "GSTIN"
	case SummaryFieldADCode:
		return "AD Code"
	}
	return string(f)
}

// Valid reports whether f is one of the known summary fields.
func (f SummaryField) Valid() bool {
	switch f {
	case SummaryFieldImporterName, SummaryFieldIECNumber, SummaryFieldGSTIN, SummaryFieldADCode:
		return true
	}
	return false
}

// SummaryStatus is the comparison outcome for one summary field.
type SummaryStatus string

const (
	SummaryMatch        SummaryStatus = "match"
	SummaryMismatch     SummaryStatus = "mismatch"
	SummaryNotAvailable SummaryStatus = "not_available"
)

// SummaryStatusSet holds the status of every summary field for one
// verification pass.
type SummaryStatusSet map[SummaryField]SummaryStatus

// HasMismatch reports whether any field in the set mismatched.
func (s SummaryStatusSet) HasMismatch() bool {
	for _, st := range s {
		if st == SummaryMismatch {
			return true
		}
	}
	return false
}

// InvoiceCheckState classifies the informational declared-vs-calculated
// invoice value cross-check. Mixed currencies and missing price data are
// distinct non-comparable states, not mismatches.
type InvoiceCheckState string

const (
	InvoiceCheckMatch           InvoiceCheckState = "match"
	InvoiceCheckMismatch        InvoiceCheckState = "mismatch"
	InvoiceCheckMixedCurrencies InvoiceCheckState = "mixed_currencies"
	InvoiceCheckMissingPrices   InvoiceCheckState = "missing_item_price_data"
	InvoiceCheckNotApplicable   InvoiceCheckState = "not_applicable"
)

// InvoiceCheck is the result of summing quantity x unit price across all
// items and comparing against the declared invoice value. It is
// informational only and never gates approval readiness.
type InvoiceCheck struct {
	State           InvoiceCheckState `json:"state"`
	CalculatedTotal *MonetaryValue    `json:"calculatedTotal,omitempty"`
	DeclaredValue   *MonetaryValue    `json:"declaredValue,omitempty"`
	Display         string            `json:"display"`
}
