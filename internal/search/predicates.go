package search

import (
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/province"
)

// ValidProvince reports whether the store's province is usable.
// A store without a province (nil or the empty string) is valid; otherwise
// the code must be a key of the lookup. A blank but non-empty value such as
// "  " is a present, unknown code.
func ValidProvince(store models.Store, lookup *province.Lookup) bool {
	code, ok := deref(store.Province)
	if !ok || code == "" {
		return true
	}
	return lookup.Has(code)
}

// MatchesName reports whether term occurs in the store name.
func MatchesName(store models.Store, term string) bool {
	return containsFold(store.Name, term)
}

// MatchesCity reports whether term occurs in the store city.
func MatchesCity(store models.Store, term string) bool {
	city, ok := deref(store.City)
	return ok && containsFold(city, term)
}

// MatchesPostalCode reports whether term occurs in the stored postal code.
// The stored value is compared as is, without normalization.
func MatchesPostalCode(store models.Store, term string) bool {
	code, ok := deref(store.PostalCode)
	return ok && containsFold(code, term)
}

// MatchesProvince reports whether term designates the store's province.
//
// It matches when term is exactly a code or full name in the lookup that
// resolves to the store's province, or when term is part of the full name of
// a reference record with the store's code. Region names never match.
func MatchesProvince(store models.Store, term string, lookup *province.Lookup) bool {
	code, ok := deref(store.Province)
	if !ok {
		return false
	}

	if p, found := lookup.Resolve(term); found && equalFold(code, p.Code) {
		return true
	}

	for _, p := range lookup.Records() {
		if containsFold(p.Name, term) && equalFold(code, p.Code) {
			return true
		}
	}
	return false
}

// MatchesCategory reports whether the store belongs to category. An empty
// category selects everything; otherwise comparison is exact and
// case-sensitive.
func MatchesCategory(store models.Store, category string) bool {
	if category == "" {
		return true
	}
	stored, ok := deref(store.Category)
	return ok && stored == category
}

// MatchesUserPostalCode reports whether the store is at the user's postal
// code. A blank user code disables the check. Codes are compared after
// NormalizePostalCode; if either side has no digits the store does not match.
func MatchesUserPostalCode(store models.Store, userPostalCode string) bool {
	if isBlank(userPostalCode) {
		return true
	}

	stored, ok := deref(store.PostalCode)
	if !ok {
		return false
	}

	want, ok := NormalizePostalCode(userPostalCode)
	if !ok {
		return false
	}
	got, ok := NormalizePostalCode(stored)
	if !ok {
		return false
	}
	return got == want
}
