package router

import (
	"encoding/json"
	"net/http"

	"github.com/opencustoms/boe-copilot/internal/catalog"
	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// CatalogRouter serves the reference catalog endpoints.
type CatalogRouter struct {
	store *catalog.Store
}

func NewCatalogRouter(store *catalog.Store) *CatalogRouter {
	return &CatalogRouter{store: store}
}

// HandleList handles GET /api/catalog
func (cr *CatalogRouter) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := cr.store.Load(r.Context())
	if err != nil {
		http.Error(w, "failed to load catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleReplace handles PUT /api/catalog
func (cr *CatalogRouter) HandleReplace(w http.ResponseWriter, r *http.Request) {
	var entries []model.CatalogEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := cr.store.Replace(r.Context(), entries); err != nil {
		http.Error(w, "failed to save catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleImportCSV handles POST /api/catalog/import with a CSV body.
// The import is all-or-nothing: a malformed file is rejected with a
// descriptive message and no partial catalog is saved.
func (cr *CatalogRouter) HandleImportCSV(w http.ResponseWriter, r *http.Request) {
	entries, err := catalog.ParseCSV(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := cr.store.Replace(r.Context(), entries); err != nil {
		http.Error(w, "failed to save catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(entries)})
}

// HandleExportCSV handles GET /api/catalog/export
func (cr *CatalogRouter) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	entries, err := cr.store.Load(r.Context())
	if err != nil {
		http.Error(w, "failed to load catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.csv"`)
	if err := catalog.WriteCSV(w, entries); err != nil {
		http.Error(w, "failed to write CSV", http.StatusInternalServerError)
		return
	}
}
