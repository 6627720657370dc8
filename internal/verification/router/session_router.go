package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opencustoms/boe-copilot/internal/extraction"
	"github.com/opencustoms/boe-copilot/internal/inbox"
	"github.com/opencustoms/boe-copilot/internal/uploads"
	"github.com/opencustoms/boe-copilot/internal/verification"
	"github.com/opencustoms/boe-copilot/internal/verification/model"
	"github.com/opencustoms/boe-copilot/internal/verification/service"
)

// SessionRouter serves the verification session endpoints.
type SessionRouter struct {
	m           *verification.Manager
	inbox       *inbox.Store
	attachments *uploads.AttachmentService
}

func NewSessionRouter(m *verification.Manager, inboxStore *inbox.Store, attachments *uploads.AttachmentService) *SessionRouter {
	return &SessionRouter{m: m, inbox: inboxStore, attachments: attachments}
}

// CreateSessionRequest starts verification either from raw document text
// or from an inbox message's attachment.
type CreateSessionRequest struct {
	Text      string     `json:"text,omitempty"`
	MessageID *uuid.UUID `json:"messageId,omitempty"`
}

// HandleCreateSession handles POST /api/sessions
func (sr *SessionRouter) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	text := req.Text
	if req.MessageID != nil {
		msg, err := sr.inbox.Get(r.Context(), *req.MessageID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "message not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "failed to load message: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if msg.AttachmentKey == "" {
			http.Error(w, "message has no attachment", http.StatusUnprocessableEntity)
			return
		}
		data, _, err := sr.attachments.ReadAll(r.Context(), msg.AttachmentKey)
		if err != nil {
			http.Error(w, "failed to read attachment: "+err.Error(), http.StatusInternalServerError)
			return
		}
		text = string(data)
	}

	session, err := sr.m.StartSession(r.Context(), text)
	if errors.Is(err, extraction.ErrEmptyInput) {
		http.Error(w, "document text is empty", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, "verification failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	if req.MessageID != nil {
		if err := sr.inbox.UpdateStatus(r.Context(), *req.MessageID, inbox.StatusProcessed); err != nil {
			http.Error(w, "failed to update message status: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusCreated, session.Snapshot())
}

// HandleGetSession handles GET /api/sessions/{sessionID}
func (sr *SessionRouter) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := sr.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleReverify handles POST /api/sessions/{sessionID}/reverify
func (sr *SessionRouter) HandleReverify(w http.ResponseWriter, r *http.Request) {
	session, ok := sr.session(w, r)
	if !ok {
		return
	}
	if err := sr.m.Reverify(r.Context(), session); err != nil {
		http.Error(w, "verification failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// DispositionRequest carries the reviewer's decision for one discrepancy.
type DispositionRequest struct {
	Action string `json:"action"`
}

// HandleSummaryDisposition handles POST /api/sessions/{sessionID}/summary/{field}/disposition
func (sr *SessionRouter) HandleSummaryDisposition(w http.ResponseWriter, r *http.Request) {
	session, ok := sr.session(w, r)
	if !ok {
		return
	}
	var req DispositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	field := model.SummaryField(r.PathValue("field"))
	err := session.DisposeSummary(field, model.SummaryDisposition(req.Action))
	if err != nil {
		writeDispositionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleItemDisposition handles POST /api/sessions/{sessionID}/items/{index}/disposition
func (sr *SessionRouter) HandleItemDisposition(w http.ResponseWriter, r *http.Request) {
	session, ok := sr.session(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid item index", http.StatusBadRequest)
		return
	}
	var req DispositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	err = session.DisposeItem(r.Context(), index, model.ItemDisposition(req.Action))
	if err != nil {
		writeDispositionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleApprove handles POST /api/sessions/{sessionID}/approve
func (sr *SessionRouter) HandleApprove(w http.ResponseWriter, r *http.Request) {
	session, ok := sr.session(w, r)
	if !ok {
		return
	}
	if err := session.Approve(); err != nil {
		writeDispositionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleGetDraft handles GET /api/draft
func (sr *SessionRouter) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"content": sr.m.Draft().Content()})
}

// HandleClearDraft handles DELETE /api/draft
func (sr *SessionRouter) HandleClearDraft(w http.ResponseWriter, r *http.Request) {
	sr.m.Draft().Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (sr *SessionRouter) session(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	id, err := uuid.Parse(r.PathValue("sessionID"))
	if err != nil {
		http.Error(w, "invalid session ID", http.StatusBadRequest)
		return nil, false
	}
	session, ok := sr.m.Session(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func writeDispositionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoResults),
		errors.Is(err, service.ErrUnknownField),
		errors.Is(err, service.ErrItemIndexOutOfRange):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrAlreadyDisposed),
		errors.Is(err, service.ErrActionNotOffered),
		errors.Is(err, service.ErrNotReady),
		errors.Is(err, service.ErrAlreadyApproved):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}
