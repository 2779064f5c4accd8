package catalog

import "strings"

// Search filters the catalog with a case-insensitive substring match on manufacturer,
// model and the record's secondary key.
//
// filtered is false when the query is empty or whitespace: no filter was applied and
// callers are expected to show the grouped view instead. A non-empty query that matches
// nothing yields an empty, non-nil slice with filtered set.
func (s *Store[T]) Search(query string) (records []T, filtered bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, false
	}

	matches := make([]T, 0)
	for _, r := range s.records {
		if Matches(r, q) {
			matches = append(matches, r)
		}
	}
	return matches, true
}

// Matches reports whether a lower-cased, trimmed query hits any searchable field of r.
func Matches(r Record, q string) bool {
	for _, field := range []string{r.Make(), r.ModelName(), r.SecondaryKey()} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
