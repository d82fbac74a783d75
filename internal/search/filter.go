// Package search filters stores by free text, category and the user's
// postal code, hiding stores whose province is not in the reference table.
//
// Every function here is pure: inputs are only read, so a single
// province.Lookup can be shared by concurrent callers.
package search

import (
	"sort"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/province"
)

// Query holds the user's search criteria. Empty fields are inactive.
type Query struct {
	Term       string // free text matched against name, province, city and postal code
	Category   string // exact category, "" for all
	PostalCode string // raw user postal code, usually from reverse geocoding
}

// Filter returns the stores that satisfy q, in their original order.
//
// A store is kept when, in this order: its province is valid, it is at the
// user's postal code (if one is given), it is in the selected category, and
// either the term is blank or it matches the name, province, city or postal
// code.
func Filter(stores []models.Store, q Query, lookup *province.Lookup) []models.Store {
	result := make([]models.Store, 0, len(stores))
	for _, s := range stores {
		if Match(s, q, lookup) {
			result = append(result, s)
		}
	}
	return result
}

// Match applies the Filter decision to a single store.
func Match(store models.Store, q Query, lookup *province.Lookup) bool {
	if !ValidProvince(store, lookup) {
		return false
	}
	if !isBlank(q.PostalCode) && !MatchesUserPostalCode(store, q.PostalCode) {
		return false
	}
	if !MatchesCategory(store, q.Category) {
		return false
	}
	if isBlank(q.Term) {
		return true
	}
	return MatchesName(store, q.Term) ||
		MatchesProvince(store, q.Term, lookup) ||
		MatchesCity(store, q.Term) ||
		MatchesPostalCode(store, q.Term)
}

// Categories returns the distinct non-empty categories of stores, sorted.
func Categories(stores []models.Store) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range stores {
		c, ok := deref(s.Category)
		if !ok || c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
