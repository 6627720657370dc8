package catalog

import (
	"strings"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// NormalizeName upper-cases a product name and collapses every run of
// non-alphanumeric characters into a single underscore. Normalizing an
// already-normalized name returns it unchanged.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	inSeparator := false
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			inSeparator = false
			continue
		}
		if !inSeparator {
			b.WriteByte('_')
			inSeparator = true
		}
	}
	return b.String()
}

// Find resolves a free-text item description against the catalog: an
// entry matches when its normalized name is a substring of the normalized
// description. The first matching entry in catalog order wins; there is
// no ranking among multiple matches. A nil return is the expected
// missing-in-reference outcome, not an error.
//
// Descriptions from extraction are verbose free text while catalog names
// are short canonical tokens, so substring containment is the matching
// heuristic. Overly generic catalog names can produce false positives.
func Find(description string, entries []model.CatalogEntry) *model.CatalogEntry {
	normalized := NormalizeName(description)
	for i := range entries {
		if strings.Contains(normalized, NormalizeName(entries[i].Name)) {
			return &entries[i]
		}
	}
	return nil
}
