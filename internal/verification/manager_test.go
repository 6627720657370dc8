package verification

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opencustoms/boe-copilot/internal/catalog"
	"github.com/opencustoms/boe-copilot/internal/database"
	"github.com/opencustoms/boe-copilot/internal/extraction"
	"github.com/opencustoms/boe-copilot/internal/profile"
	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, req extraction.Request) (*model.ChecklistRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChecklistRecord), args.Error(1)
}

func mv(amount, currency string) *model.MonetaryValue {
	return &model.MonetaryValue{Amount: decimal.RequireFromString(amount), Currency: currency}
}

func newTestStores(t *testing.T) (*catalog.Store, *profile.Store) {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	catalogStore, err := catalog.NewStore(db)
	require.NoError(t, err)
	profileStore, err := profile.NewStore(db)
	require.NoError(t, err)
	return catalogStore, profileStore
}

func consistentRecord() *model.ChecklistRecord {
	return &model.ChecklistRecord{
		ImporterName: "Acme Imports Pvt Ltd",
		InvoiceValue: mv("25.00", "USD"),
		Items: []model.ChecklistLineItem{
			{Description: "Steel Bolts M8", HSCode: "7318.16", Quantity: 10, UnitPrice: mv("2.50", "USD")},
		},
	}
}

func TestManager_StartSessionRunsFullPipeline(t *testing.T) {
	catalogStore, profileStore := newTestStores(t)
	ctx := context.Background()
	require.NoError(t, catalogStore.Replace(ctx, []model.CatalogEntry{
		{Name: "STEEL_BOLTS", HSCode: "7318.16", UnitPrice: *mv("2.50", "USD")},
	}))
	require.NoError(t, profileStore.Save(ctx, &profile.ImporterProfile{ImporterName: "Acme Imports Pvt Ltd"}))

	extractor := &MockExtractor{}
	extractor.On("Extract", mock.Anything, extraction.Request{Text: "raw pdf text"}).
		Return(consistentRecord(), nil).Once()

	m := NewManager(extractor, catalogStore, profileStore)
	s, err := m.StartSession(ctx, "raw pdf text")
	require.NoError(t, err)
	extractor.AssertExpectations(t)

	registered, ok := m.Session(s.ID)
	assert.True(t, ok)
	assert.Same(t, s, registered)

	snap := s.Snapshot()
	require.Len(t, snap.Results, 1)
	assert.Equal(t, model.OverallOK, snap.Results[0].OverallStatus)
	assert.Equal(t, model.SummaryMatch, snap.Summary[model.SummaryFieldImporterName])
	assert.Equal(t, model.InvoiceCheckMatch, snap.InvoiceCheck.State)
	assert.True(t, snap.Ready)
}

func TestManager_StartSessionRejectsOnExtractionFailure(t *testing.T) {
	catalogStore, profileStore := newTestStores(t)
	extractor := &MockExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(nil, errors.New("model unavailable"))

	m := NewManager(extractor, catalogStore, profileStore)
	s, err := m.StartSession(context.Background(), "raw pdf text")
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestManager_InvoiceMismatchTriggersCorrectedExtraction(t *testing.T) {
	catalogStore, profileStore := newTestStores(t)
	ctx := context.Background()

	// First extraction disagrees with its own item sum; the pipeline asks
	// for one corrected extraction carrying the declared value back.
	inconsistent := consistentRecord()
	inconsistent.InvoiceValue = mv("99.00", "USD")

	extractor := &MockExtractor{}
	extractor.On("Extract", mock.Anything, extraction.Request{Text: "raw pdf text"}).
		Return(inconsistent, nil).Once()
	extractor.On("Extract", mock.Anything, extraction.Request{
		Text:            "raw pdf text",
		NeedsCorrection: true,
		InvoiceValue:    mv("99.00", "USD"),
	}).Return(consistentRecord(), nil).Once()

	m := NewManager(extractor, catalogStore, profileStore)
	s, err := m.StartSession(ctx, "raw pdf text")
	require.NoError(t, err)
	extractor.AssertExpectations(t)

	assert.Equal(t, model.InvoiceCheckMatch, s.Snapshot().InvoiceCheck.State)
}

func TestManager_CorrectedExtractionFailureKeepsFirstResult(t *testing.T) {
	catalogStore, profileStore := newTestStores(t)

	inconsistent := consistentRecord()
	inconsistent.InvoiceValue = mv("99.00", "USD")

	extractor := &MockExtractor{}
	extractor.On("Extract", mock.Anything, extraction.Request{Text: "raw pdf text"}).
		Return(inconsistent, nil).Once()
	extractor.On("Extract", mock.Anything, mock.MatchedBy(func(req extraction.Request) bool {
		return req.NeedsCorrection
	})).Return(nil, errors.New("model unavailable")).Once()

	m := NewManager(extractor, catalogStore, profileStore)
	s, err := m.StartSession(context.Background(), "raw pdf text")
	require.NoError(t, err)
	extractor.AssertExpectations(t)

	snap := s.Snapshot()
	assert.Equal(t, model.InvoiceCheckMismatch, snap.InvoiceCheck.State)
	require.NotNil(t, snap.Record)
	assert.Equal(t, "99", snap.Record.InvoiceValue.Amount.String())
}

func TestManager_ReverifyPicksUpCatalogChanges(t *testing.T) {
	catalogStore, profileStore := newTestStores(t)
	ctx := context.Background()

	extractor := &MockExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything).Return(consistentRecord(), nil)

	m := NewManager(extractor, catalogStore, profileStore)
	s, err := m.StartSession(ctx, "raw pdf text")
	require.NoError(t, err)

	// With an empty catalog the item is flagged as missing.
	snap := s.Snapshot()
	require.Len(t, snap.Results, 1)
	assert.Equal(t, model.OverallReviewNeeded, snap.Results[0].OverallStatus)

	require.NoError(t, catalogStore.Append(ctx, model.CatalogEntry{
		Name: "STEEL_BOLTS", HSCode: "7318.16", UnitPrice: *mv("2.50", "USD"),
	}))
	require.NoError(t, m.Reverify(ctx, s))

	snap = s.Snapshot()
	require.Len(t, snap.Results, 1)
	assert.Equal(t, model.OverallOK, snap.Results[0].OverallStatus)
}

func TestManager_MissingProfileReportsNotAvailable(t *testing.T) {
	catalogStore, profileStore := newTestStores(t)

	extractor := &MockExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything).Return(consistentRecord(), nil)

	m := NewManager(extractor, catalogStore, profileStore)
	s, err := m.StartSession(context.Background(), "raw pdf text")
	require.NoError(t, err)

	snap := s.Snapshot()
	for _, f := range model.AllSummaryFields {
		assert.Equal(t, model.SummaryNotAvailable, snap.Summary[f])
	}
}
