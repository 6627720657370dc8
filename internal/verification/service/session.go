package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/opencustoms/boe-copilot/internal/profile"
	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

var (
	// ErrNoResults is returned for disposition actions before a
	// verification pass has installed results.
	ErrNoResults = errors.New("no verification results loaded")

	// ErrAlreadyDisposed is returned when a discrepancy has already left
	// pending. Terminal dispositions are never double-applied.
	ErrAlreadyDisposed = errors.New("discrepancy already disposed")

	// ErrActionNotOffered is returned when the requested action is not
	// offered for the discrepancy's current status.
	ErrActionNotOffered = errors.New("action not offered for this discrepancy")

	// ErrUnknownField is returned for a summary field outside the closed set.
	ErrUnknownField = errors.New("unknown summary field")

	// ErrItemIndexOutOfRange is returned for an item index with no result.
	ErrItemIndexOutOfRange = errors.New("item index out of range")

	// ErrNotReady is returned when approval is requested while
	// discrepancies are still pending.
	ErrNotReady = errors.New("checklist has undisposed discrepancies")

	// ErrAlreadyApproved is returned when a session is approved twice.
	ErrAlreadyApproved = errors.New("checklist already approved")
)

// CatalogAppender persists a catalog entry created by an
// accept-to-catalog disposition.
type CatalogAppender interface {
	Append(ctx context.Context, entry model.CatalogEntry) error
}

// Session tracks one checklist verification: the latest reconciliation
// results plus the reviewer's disposition of every discrepancy. All
// mutating operations serialize on the session mutex, so concurrent
// disposition actions against the same unit apply one at a time.
//
// Verification passes are numbered. A re-run (new extraction output,
// catalog reload) begins a new pass and supersedes any in-flight prior
// pass for the session: stale results are discarded at install time and
// can never overwrite fresher disposition state.
type Session struct {
	ID uuid.UUID

	draft   *Draft
	catalog CatalogAppender

	mu              sync.Mutex
	pass            uint64
	sourceText      string
	record          *model.ChecklistRecord
	profileSnapshot *profile.ImporterProfile
	results         []model.ItemResult
	summary         model.SummaryStatusSet
	summaryDisp     map[model.SummaryField]model.SummaryDisposition
	itemDisp        map[int]model.ItemDisposition
	invoiceCheck    model.InvoiceCheck
	approved        bool
}

// NewSession creates an empty session bound to the shared draft and the
// catalog used by accept-to-catalog dispositions.
func NewSession(draft *Draft, catalog CatalogAppender) *Session {
	return &Session{
		ID:          uuid.New(),
		draft:       draft,
		catalog:     catalog,
		summary:     make(model.SummaryStatusSet),
		summaryDisp: make(map[model.SummaryField]model.SummaryDisposition),
		itemDisp:    make(map[int]model.ItemDisposition),
	}
}

// BeginPass starts a new verification pass: it discards current results,
// resets every disposition and the approved flag, and returns the pass
// number InstallResults must present.
func (s *Session) BeginPass(sourceText string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pass++
	s.sourceText = sourceText
	s.record = nil
	s.profileSnapshot = nil
	s.results = nil
	s.summary = make(model.SummaryStatusSet)
	s.summaryDisp = make(map[model.SummaryField]model.SummaryDisposition)
	s.itemDisp = make(map[int]model.ItemDisposition)
	s.invoiceCheck = model.InvoiceCheck{State: model.InvoiceCheckNotApplicable, Display: model.NotAvailableDisplay}
	s.approved = false
	return s.pass
}

// SourceText returns the raw document text of the latest pass.
func (s *Session) SourceText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourceText
}

// InstallResults installs the outcome of a verification pass and
// initializes every disposition to pending. It reports false, leaving the
// session untouched, when the pass has been superseded by a newer one.
func (s *Session) InstallResults(
	pass uint64,
	record *model.ChecklistRecord,
	profileSnapshot *profile.ImporterProfile,
	results []model.ItemResult,
	summary model.SummaryStatusSet,
	invoiceCheck model.InvoiceCheck,
) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass != s.pass {
		return false
	}
	s.record = record
	s.profileSnapshot = profileSnapshot
	s.results = results
	s.summary = summary
	s.invoiceCheck = invoiceCheck
	s.summaryDisp = make(map[model.SummaryField]model.SummaryDisposition, len(model.AllSummaryFields))
	for _, f := range model.AllSummaryFields {
		s.summaryDisp[f] = model.SummaryDispositionPending
	}
	s.itemDisp = make(map[int]model.ItemDisposition, len(results))
	for i := range results {
		s.itemDisp[i] = model.ItemDispositionPending
	}
	s.approved = false
	return true
}

// DisposeSummary applies a terminal disposition to a mismatched summary
// field. Accepting pushes a correction note into the draft; ignoring has
// no side effect. Only mismatched fields offer actions, and a field that
// already left pending is rejected.
func (s *Session) DisposeSummary(field model.SummaryField, action model.SummaryDisposition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return ErrNoResults
	}
	if !field.Valid() {
		return ErrUnknownField
	}
	if s.summary[field] != model.SummaryMismatch {
		return ErrActionNotOffered
	}
	if s.summaryDisp[field] != model.SummaryDispositionPending {
		return ErrAlreadyDisposed
	}

	switch action {
	case model.SummaryDispositionAccepted:
		s.draft.Append(summaryCorrectionNote(field, s.record, s.profileSnapshot))
	case model.SummaryDispositionIgnored:
		// no side effect
	default:
		return ErrActionNotOffered
	}

	s.summaryDisp[field] = action
	return nil
}

// DisposeItem applies a terminal disposition to a flagged line item.
// accept-to-catalog is offered only for items with a missing_in_reference
// difference and persists a new catalog entry; accept-to-email is offered
// only for an HS-code mismatch and pushes a correction note; ignore is
// offered for any review_needed item. Items with status ok carry no
// actionable discrepancy and offer nothing.
func (s *Session) DisposeItem(ctx context.Context, index int, action model.ItemDisposition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return ErrNoResults
	}
	if index < 0 || index >= len(s.results) {
		return ErrItemIndexOutOfRange
	}
	result := s.results[index]
	if result.OverallStatus != model.OverallReviewNeeded {
		return ErrActionNotOffered
	}
	if s.itemDisp[index] != model.ItemDispositionPending {
		return ErrAlreadyDisposed
	}

	switch action {
	case model.ItemDispositionAcceptedToCatalog:
		if !result.HasDifference(model.FieldMissingInReference) {
			return ErrActionNotOffered
		}
		entry := model.CatalogEntry{
			Name:   result.Item.Description,
			HSCode: result.Item.HSCode,
		}
		if result.Item.UnitPrice != nil {
			entry.UnitPrice = *result.Item.UnitPrice
		}
		// Persist before recording the disposition so a storage failure
		// leaves the item pending and retryable.
		if err := s.catalog.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to add item to catalog: %w", err)
		}
	case model.ItemDispositionAcceptedToEmail:
		diff := result.HSCodeMismatch()
		if diff == nil {
			return ErrActionNotOffered
		}
		s.draft.Append(itemCorrectionNote(result, diff))
	case model.ItemDispositionIgnored:
		// no side effect
	default:
		return ErrActionNotOffered
	}

	s.itemDisp[index] = action
	return nil
}

// Ready derives approval readiness from the current snapshot: every
// mismatched summary field and every review_needed item must have left
// pending. Items with status ok have a populated disposition entry but
// never gate, since they carry nothing actionable. Readiness is
// recomputed on demand, never cached.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyLocked()
}

func (s *Session) readyLocked() bool {
	if s.record == nil {
		return false
	}
	for field, status := range s.summary {
		if status == model.SummaryMismatch && s.summaryDisp[field] == model.SummaryDispositionPending {
			return false
		}
	}
	for i, result := range s.results {
		if result.OverallStatus == model.OverallReviewNeeded && s.itemDisp[i] == model.ItemDispositionPending {
			return false
		}
	}
	return true
}

// Approve marks the checklist approved and overwrites the draft with the
// approval boilerplate. It is rejected while discrepancies are pending
// and on repeat approval.
func (s *Session) Approve() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.approved {
		return ErrAlreadyApproved
	}
	if !s.readyLocked() {
		return ErrNotReady
	}
	s.draft.SetApproved()
	s.approved = true
	return nil
}

// Snapshot is a read-only copy of the session state for presentation.
type Snapshot struct {
	SessionID           uuid.UUID                                    `json:"sessionId"`
	Record              *model.ChecklistRecord                       `json:"record"`
	Results             []model.ItemResult                           `json:"results"`
	Summary             model.SummaryStatusSet                       `json:"summary"`
	SummaryDispositions map[model.SummaryField]model.SummaryDisposition `json:"summaryDispositions"`
	ItemDispositions    map[int]model.ItemDisposition                `json:"itemDispositions"`
	InvoiceCheck        model.InvoiceCheck                           `json:"invoiceCheck"`
	SummaryOverall      model.SummaryOverall                         `json:"summaryOverall"`
	Ready               bool                                         `json:"ready"`
	Approved            bool                                         `json:"approved"`
}

// Snapshot returns a consistent copy of the current session state. The
// derived fields (readiness, summary overall) are computed from the
// snapshot itself rather than cached incrementally.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := make(model.SummaryStatusSet, len(s.summary))
	for f, st := range s.summary {
		summary[f] = st
	}
	summaryDisp := make(map[model.SummaryField]model.SummaryDisposition, len(s.summaryDisp))
	for f, d := range s.summaryDisp {
		summaryDisp[f] = d
	}
	itemDisp := make(map[int]model.ItemDisposition, len(s.itemDisp))
	for i, d := range s.itemDisp {
		itemDisp[i] = d
	}
	results := make([]model.ItemResult, len(s.results))
	copy(results, s.results)

	return Snapshot{
		SessionID:           s.ID,
		Record:              s.record,
		Results:             results,
		Summary:             summary,
		SummaryDispositions: summaryDisp,
		ItemDispositions:    itemDisp,
		InvoiceCheck:        s.invoiceCheck,
		SummaryOverall:      s.summaryOverallLocked(),
		Ready:               s.readyLocked(),
		Approved:            s.approved,
	}
}

func (s *Session) summaryOverallLocked() model.SummaryOverall {
	if !s.summary.HasMismatch() {
		return model.SummaryOverallAllMatch
	}
	for field, status := range s.summary {
		if status == model.SummaryMismatch && s.summaryDisp[field] == model.SummaryDispositionPending {
			return model.SummaryOverallReviewNeeded
		}
	}
	return model.SummaryOverallReviewed
}

// summaryCorrectionNote renders the correction note for an accepted
// summary-field mismatch.
func summaryCorrectionNote(field model.SummaryField, record *model.ChecklistRecord, saved *profile.ImporterProfile) string {
	checklistValue, savedValue := summaryFieldValues(field, record, saved)
	if saved == nil || savedValue == "" {
		savedValue = model.NotAvailableDisplay
	}
	return fmt.Sprintf("- %s:\n  Checklist Value: %q\n  Correct Value:   %q", field.Label(), checklistValue, savedValue)
}

// itemCorrectionNote renders the correction note for an accepted HS-code
// mismatch on a line item.
func itemCorrectionNote(result model.ItemResult, diff *model.Difference) string {
	return fmt.Sprintf("- Item Sr. No. %s: Correct HS Code\n  Checklist Value: %q\n  Correct Value:   %q",
		itemRef(result.Item), diff.ChecklistValue, diff.ReferenceValue)
}

// itemRef identifies an item in a correction note, falling back to a
// description prefix when the document carries no serial number.
func itemRef(item model.ChecklistLineItem) string {
	if item.ItemNumber != nil {
		return fmt.Sprintf("%d", *item.ItemNumber)
	}
	desc := item.Description
	if len(desc) > 20 {
		desc = desc[:20] + "..."
	}
	return fmt.Sprintf("(Desc: %s)", desc)
}
