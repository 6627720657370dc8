package model

// ChecklistLineItem is one line item of an extracted Bill of Entry
// checklist. Items are produced wholesale by the extraction collaborator
// and stay immutable for the duration of one verification pass.
type ChecklistLineItem struct {
	ItemNumber      *int           `json:"itemNumber,omitempty"` // serial number when the document carries one
	Description     string         `json:"description"`
	HSCode          string         `json:"hsCode"`
	Quantity        float64        `json:"quantity"`
	Unit            string         `json:"unit"`
	UnitPrice       *MonetaryValue `json:"unitPrice"`
	TotalPrice      *MonetaryValue `json:"totalPrice"`
	DutyRatePercent *float64       `json:"dutyRatePercent,omitempty"` // basic customs duty, e.g. 7.5
	NotificationRef string         `json:"notificationRef,omitempty"` // e.g. "01/2017-Cus (Sl. No. 45)"
	ExchangeRate    *float64       `json:"exchangeRate,omitempty"`
}

// DutyAmount is the total duty stated on the checklist, in words and
// numerically.
type DutyAmount struct {
	Words     string        `json:"words"`
	Numerical MonetaryValue `json:"numerical"`
}

// ChecklistRecord is the structured data extracted from one checklist
// document. One record is verified per session.
type ChecklistRecord struct {
	AWBNumber       string              `json:"awbNumber"`
	ImporterName    string              `json:"importerName"`
	ADCode          string              `json:"adCode"`
	IECNumber       string              `json:"iecNumber"`
	GSTIN           string              `json:"gstin"`
	Incoterm        string              `json:"incoterm"`
	GrossWeightKG   float64             `json:"grossWeightKg"`
	Freight         *MonetaryValue      `json:"freight"`
	MiscCharges     *MonetaryValue      `json:"miscCharges"`
	InvoiceValue    *MonetaryValue      `json:"invoiceValue"`
	InvoiceRefs     string              `json:"invoiceNumbersAndDates"`
	SupplierDetails string              `json:"supplierDetails"`
	DutyAmount      *DutyAmount         `json:"dutyAmount,omitempty"`
	Items           []ChecklistLineItem `json:"items"`
}

// CatalogEntry is one product in the user-maintained reference catalog.
// The catalog is a flat ordered list; duplicates are tolerated and lookup
// resolves to the first textual match.
type CatalogEntry struct {
	Name      string        `json:"name"`
	HSCode    string        `json:"hsCode"`
	UnitPrice MonetaryValue `json:"unitPrice"`
}
