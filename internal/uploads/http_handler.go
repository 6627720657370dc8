package uploads

import (
	"io"
	"net/http"
)

// HTTPHandler serves stored attachments back over HTTP.
type HTTPHandler struct {
	service *AttachmentService
}

func NewHTTPHandler(service *AttachmentService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// HandleDownload handles GET /api/uploads/{key}
func (h *HTTPHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		http.Error(w, "attachment key is required", http.StatusBadRequest)
		return
	}

	reader, contentType, err := h.service.Open(r.Context(), key)
	if err != nil {
		http.Error(w, "attachment not found", http.StatusNotFound)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, reader); err != nil {
		// Headers already sent; nothing left to report to the client.
		return
	}
}
