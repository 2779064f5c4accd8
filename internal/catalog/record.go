// Package catalog holds the static equipment catalogs used by the certificate forms:
// lookup, search, grouping by manufacturer, and the auto-fill of dependent form fields
// when an installer picks a catalog record.
package catalog

import (
	"strings"
)

// NewSinceYear marks records introduced in or after this year as new in listings.
const NewSinceYear = 2024

// Record is a catalog entry. Implemented by the equipment entities.
type Record interface {
	RecordID() string
	Make() string
	ModelName() string
	Introduced() int
	// SecondaryKey is the domain field searched alongside make and model.
	SecondaryKey() string
}

// Label is the "make model" pseudo-key used by free-text form fields.
func Label(r Record) string {
	return strings.TrimSpace(r.Make() + " " + r.ModelName())
}

// IsNew reports whether a record should carry the NEW flag.
func IsNew(r Record) bool {
	return r.Introduced() >= NewSinceYear
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
