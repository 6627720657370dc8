package router

import (
	"encoding/json"
	"net/http"

	"github.com/opencustoms/boe-copilot/internal/profile"
)

// ProfileRouter serves the saved importer profile endpoints.
type ProfileRouter struct {
	store *profile.Store
}

func NewProfileRouter(store *profile.Store) *ProfileRouter {
	return &ProfileRouter{store: store}
}

// HandleGet handles GET /api/profile
func (pr *ProfileRouter) HandleGet(w http.ResponseWriter, r *http.Request) {
	saved, err := pr.store.Load(r.Context())
	if err != nil {
		http.Error(w, "failed to load profile: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if saved == nil {
		http.Error(w, "no importer profile saved", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleSave handles PUT /api/profile
func (pr *ProfileRouter) HandleSave(w http.ResponseWriter, r *http.Request) {
	var saved profile.ImporterProfile
	if err := json.NewDecoder(r.Body).Decode(&saved); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := pr.store.Save(r.Context(), &saved); err != nil {
		http.Error(w, "failed to save profile: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
