// Package promotion selects the promotions shown to customers.
package promotion

import (
	"sort"
	"time"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

// IsActive reports whether p is still running at now.
// A promotion without an end date never expires. One that ends exactly at
// now has expired. The start date is informational only.
func IsActive(p models.Promotion, now time.Time) bool {
	return p.EndDate == nil || p.EndDate.After(now)
}

// Active returns the promotions running at now, highest priority first.
// Promotions without a priority come after every prioritized one; ties keep
// ascending id order. The input is not modified and the result is never nil.
func Active(promotions []models.Promotion, now time.Time) []models.Promotion {
	out := make([]models.Promotion, 0, len(promotions))
	for _, p := range promotions {
		if IsActive(p, now) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Priority, out[j].Priority
		switch {
		case pi != nil && pj != nil && *pi != *pj:
			return *pi > *pj
		case pi != nil && pj == nil:
			return true
		case pi == nil && pj != nil:
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out
}
