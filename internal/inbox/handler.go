package inbox

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opencustoms/boe-copilot/internal/uploads"
	"github.com/opencustoms/boe-copilot/utils"
)

// Router serves the mock mail inbox endpoints.
type Router struct {
	store       *Store
	attachments *uploads.AttachmentService
}

func NewRouter(store *Store, attachments *uploads.AttachmentService) *Router {
	return &Router{store: store, attachments: attachments}
}

// HandleList handles GET /api/inbox?offset=&limit=
func (rt *Router) HandleList(w http.ResponseWriter, r *http.Request) {
	var offset, limit *int
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = &n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = &n
		}
	}
	finalOffset, finalLimit := utils.GetPaginationParams(offset, limit)

	result, err := rt.store.List(r.Context(), finalOffset, finalLimit)
	if err != nil {
		http.Error(w, "failed to list inbox messages: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleGet handles GET /api/inbox/{messageID}
func (rt *Router) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("messageID"))
	if err != nil {
		http.Error(w, "invalid message ID", http.StatusBadRequest)
		return
	}

	msg, err := rt.store.Get(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to retrieve message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// HandleCreate handles POST /api/inbox: a multipart form with message
// fields plus the checklist document as the "attachment" part.
func (rt *Router) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	msg := &Message{
		From:    r.FormValue("from"),
		Subject: r.FormValue("subject"),
		Snippet: r.FormValue("snippet"),
	}

	file, header, err := r.FormFile("attachment")
	if err == nil {
		defer file.Close()
		meta, err := rt.attachments.Store(r.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
		if err != nil {
			http.Error(w, "failed to store attachment: "+err.Error(), http.StatusInternalServerError)
			return
		}
		msg.AttachmentKey = meta.Key
		msg.AttachmentName = meta.Name
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, "invalid attachment: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := rt.store.Create(r.Context(), msg); err != nil {
		http.Error(w, "failed to create message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}
