package model

// SummaryDisposition is the reviewer's decision on a mismatched summary
// field. pending is the initial state; the others are terminal.
type SummaryDisposition string

const (
	SummaryDispositionPending  SummaryDisposition = "pending"
	SummaryDispositionAccepted SummaryDisposition = "accepted"
	SummaryDispositionIgnored  SummaryDisposition = "ignored"
)

// ItemDisposition is the reviewer's decision on a flagged line item.
// pending is the initial state; the others are terminal.
type ItemDisposition string

const (
	ItemDispositionPending           ItemDisposition = "pending"
	ItemDispositionAcceptedToEmail   ItemDisposition = "accepted_to_email"
	ItemDispositionIgnored           ItemDisposition = "ignored"
	ItemDispositionAcceptedToCatalog ItemDisposition = "accepted_to_catalog"
)

// DispositionBadge is the display metadata for a disposition outcome.
type DispositionBadge struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// Badge maps every item disposition to its display metadata. The switch
// covers every declared variant.
func (d ItemDisposition) Badge() DispositionBadge {
	switch d {
	case ItemDispositionPending:
		return DispositionBadge{Text: "Pending", Tone: "neutral"}
	case ItemDispositionAcceptedToEmail:
		return DispositionBadge{Text: "Added to Email", Tone: "info"}
	case ItemDispositionIgnored:
		return DispositionBadge{Text: "Ignored", Tone: "warning"}
	case ItemDispositionAcceptedToCatalog:
		return DispositionBadge{Text: "Added to Catalog", Tone: "success"}
	}
	return DispositionBadge{Text: string(d), Tone: "neutral"}
}

// Badge maps every summary disposition to its display metadata.
func (d SummaryDisposition) Badge() DispositionBadge {
	switch d {
	case SummaryDispositionPending:
		return DispositionBadge{Text: "Pending", Tone: "neutral"}
	case SummaryDispositionAccepted:
		return DispositionBadge{Text: "Added to Email", Tone: "info"}
	case SummaryDispositionIgnored:
		return DispositionBadge{Text: "Ignored", Tone: "warning"}
	}
	return DispositionBadge{Text: string(d), Tone: "neutral"}
}

// SummaryOverall is the derived display status for the summary panel.
type SummaryOverall string

const (
	SummaryOverallAllMatch     SummaryOverall = "all_match"
	SummaryOverallReviewed     SummaryOverall = "reviewed"
	SummaryOverallReviewNeeded SummaryOverall = "review_needed"
)
