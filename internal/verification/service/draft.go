package service

import (
	"strings"
	"sync"
)

// DraftIntro is the salutation prepended once at the top of a correction
// draft.
const DraftIntro = "Hi Team,\n\nPlease see the requested corrections for the attached checklist:"

// ApprovalBody is the boilerplate that replaces the whole draft when a
// checklist is approved.
const ApprovalBody = "Hi Team,\n\nChecklist is Approved from our side.\nPlease go ahead and file."

// approvalMarker identifies a leftover approval message so a new
// correction starts a fresh draft instead of appending below it.
const approvalMarker = "Checklist is Approved"

// Draft accumulates human-readable correction notes into a single
// outgoing email body. One draft serves the whole process: its lifecycle
// is independent of any single verification record, so corrections from
// several checklists may pile up until the draft is cleared or
// overwritten by an approval.
type Draft struct {
	mu      sync.Mutex
	content string
}

// NewDraft creates an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// Append adds a correction note to the draft. The intro line is written
// only once; a leftover approval message is replaced rather than appended
// to; any other existing content keeps its lead and the note goes below
// it with a blank-line separator.
func (d *Draft) Append(note string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case strings.HasPrefix(d.content, DraftIntro):
		d.content = d.content + "\n\n" + note
	case strings.Contains(d.content, approvalMarker):
		d.content = DraftIntro + "\n\n" + note
	case d.content != "":
		d.content = d.content + "\n\n" + note
	default:
		d.content = DraftIntro + "\n\n" + note
	}
}

// SetApproved overwrites the entire draft with the approval boilerplate,
// discarding any accumulated corrections. The overwrite is deliberate.
func (d *Draft) SetApproved() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = ApprovalBody
}

// Clear resets the draft to empty.
func (d *Draft) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = ""
}

// Content returns the current draft text.
func (d *Draft) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}
