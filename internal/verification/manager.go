package verification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/opencustoms/boe-copilot/internal/catalog"
	"github.com/opencustoms/boe-copilot/internal/extraction"
	"github.com/opencustoms/boe-copilot/internal/profile"
	"github.com/opencustoms/boe-copilot/internal/verification/model"
	"github.com/opencustoms/boe-copilot/internal/verification/service"
)

// Manager owns the verification engine's session registry, the shared
// correction draft, and the collaborators the engine consumes: the
// extraction service, the catalog store and the profile store. Nothing
// here is ambient state; callers reach every session through the manager
// they were handed.
type Manager struct {
	extractor extraction.Extractor
	catalog   *catalog.Store
	profiles  *profile.Store
	draft     *service.Draft

	mu       sync.RWMutex
	sessions map[uuid.UUID]*service.Session
}

// NewManager creates a verification manager.
func NewManager(extractor extraction.Extractor, catalogStore *catalog.Store, profileStore *profile.Store) *Manager {
	return &Manager{
		extractor: extractor,
		catalog:   catalogStore,
		profiles:  profileStore,
		draft:     service.NewDraft(),
		sessions:  make(map[uuid.UUID]*service.Session),
	}
}

// Draft returns the process-wide correction draft.
func (m *Manager) Draft() *service.Draft {
	return m.draft
}

// Catalog returns the catalog store.
func (m *Manager) Catalog() *catalog.Store {
	return m.catalog
}

// Profiles returns the profile store.
func (m *Manager) Profiles() *profile.Store {
	return m.profiles
}

// Session looks up a registered session by ID.
func (m *Manager) Session(id uuid.UUID) (*service.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// StartSession extracts and reconciles the given checklist text in a
// fresh session. The session is registered only when the first pass
// succeeds; extraction failure is terminal and no partial record is
// accepted.
func (m *Manager) StartSession(ctx context.Context, text string) (*service.Session, error) {
	s := service.NewSession(m.draft, m.catalog)
	if err := m.runVerification(ctx, s, text); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	slog.InfoContext(ctx, "verification session started", "sessionID", s.ID)
	return s, nil
}

// Reverify re-runs extraction and reconciliation for an existing session
// against the current catalog and profile, superseding any in-flight
// pass and resetting every disposition.
func (m *Manager) Reverify(ctx context.Context, s *service.Session) error {
	return m.runVerification(ctx, s, s.SourceText())
}

// runVerification is the verification pipeline: extract, self-correct on
// an invoice sum mismatch, reconcile items against the catalog and the
// summary against the saved profile, then install the results. A pass
// superseded by a newer one is discarded at install time.
func (m *Manager) runVerification(ctx context.Context, s *service.Session, text string) error {
	pass := s.BeginPass(text)

	record, err := m.extractor.Extract(ctx, extraction.Request{Text: text})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	// One feedback round-trip to extraction: when the declared invoice
	// value disagrees with the item sum, ask for a corrected extraction.
	if check := service.CalculateInvoiceValue(record); check.State == model.InvoiceCheckMismatch {
		slog.InfoContext(ctx, "invoice value mismatch, requesting corrected extraction",
			"sessionID", s.ID,
			"declared", model.DisplayMonetary(record.InvoiceValue),
			"calculated", check.Display,
		)
		corrected, err := m.extractor.Extract(ctx, extraction.Request{
			Text:            text,
			NeedsCorrection: true,
			InvoiceValue:    record.InvoiceValue,
		})
		if err != nil {
			slog.WarnContext(ctx, "corrected extraction failed, keeping first result", "sessionID", s.ID, "error", err)
		} else {
			record = corrected
		}
	}

	normalizeDutyWords(record)

	entries, err := m.catalog.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	prof, err := m.profiles.Load(ctx)
	if err != nil {
		// Treat an unreadable profile as not yet available: summary
		// verification reports not_available instead of failing the pass.
		slog.WarnContext(ctx, "failed to load importer profile", "sessionID", s.ID, "error", err)
		prof = nil
	}

	results := service.VerifyRecord(record, entries)
	summary := service.VerifySummary(record, prof)
	invoiceCheck := service.CalculateInvoiceValue(record)

	if !s.InstallResults(pass, record, prof, results, summary, invoiceCheck) {
		slog.InfoContext(ctx, "verification pass superseded, discarding results", "sessionID", s.ID, "pass", pass)
		return nil
	}

	slog.InfoContext(ctx, "verification pass installed",
		"sessionID", s.ID,
		"pass", pass,
		"items", len(results),
		"invoiceCheck", invoiceCheck.State,
	)
	return nil
}

// normalizeDutyWords backfills the duty amount in words when extraction
// could not find it on the document.
func normalizeDutyWords(record *model.ChecklistRecord) {
	if record == nil || record.DutyAmount == nil {
		return
	}
	words := strings.TrimSpace(record.DutyAmount.Words)
	if words != "" && !strings.EqualFold(words, model.NotAvailableDisplay) {
		return
	}
	record.DutyAmount.Words = "Value in words not found. Numerical: " + record.DutyAmount.Numerical.Display()
}
