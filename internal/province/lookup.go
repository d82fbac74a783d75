// Package province holds the Italian province reference table and the
// case-insensitive lookup built from it.
package province

import (
	"strings"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

// Lookup maps province codes and names to their reference record.
//
// Keys are the upper-cased code, the upper-cased name and the lower-cased
// name of every record. A Lookup is immutable once built and safe for
// concurrent readers; build it once and share it across searches.
type Lookup struct {
	byKey   map[string]models.Province
	records []models.Province
}

// BuildLookup indexes records by code and name. When two records produce the
// same key the later one wins.
func BuildLookup(records []models.Province) *Lookup {
	l := &Lookup{
		byKey:   make(map[string]models.Province, len(records)*3),
		records: make([]models.Province, len(records)),
	}
	copy(l.records, records)

	for _, p := range records {
		l.byKey[strings.ToUpper(p.Code)] = p
		l.byKey[strings.ToUpper(p.Name)] = p
		l.byKey[strings.ToLower(p.Name)] = p
	}
	return l
}

// Has reports whether code, trimmed and upper-cased, is a key of the lookup.
func (l *Lookup) Has(code string) bool {
	if l == nil {
		return false
	}
	_, ok := l.byKey[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Resolve finds the record for an exact code or name, ignoring case.
// The upper-cased form is tried before the lower-cased one.
func (l *Lookup) Resolve(term string) (models.Province, bool) {
	if l == nil {
		return models.Province{}, false
	}
	term = strings.TrimSpace(term)
	if p, ok := l.byKey[strings.ToUpper(term)]; ok {
		return p, true
	}
	p, ok := l.byKey[strings.ToLower(term)]
	return p, ok
}

// Records returns the reference records in load order.
// The returned slice must not be modified.
func (l *Lookup) Records() []models.Province {
	if l == nil {
		return nil
	}
	return l.records
}

// ByRegion returns the records whose region equals region, ignoring case.
func (l *Lookup) ByRegion(region string) []models.Province {
	var out []models.Province
	for _, p := range l.Records() {
		if strings.EqualFold(p.Region, strings.TrimSpace(region)) {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of keys in the lookup.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byKey)
}
