package extraction

import (
	"context"
	"errors"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// ErrEmptyInput is returned when the supplied document text is blank.
// Verification never accepts a partial record, so this is terminal for
// the session.
var ErrEmptyInput = errors.New("extraction: document text is empty")

// Request asks the collaborator to turn raw checklist text into a
// structured record. NeedsCorrection plus the previously extracted
// invoice value is the one feedback hint the verification pipeline sends
// back, when the declared value disagrees with the item sum.
type Request struct {
	Text            string
	NeedsCorrection bool
	InvoiceValue    *model.MonetaryValue
}

// Extractor produces a checklist record from raw document text. The
// verification engine does not care how extraction happens; anything that
// satisfies this interface can feed it.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*model.ChecklistRecord, error)
}
