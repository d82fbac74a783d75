package promotion_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/promotion"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func prio(n int) *int { return &n }

func ids(promotions []models.Promotion) []int64 {
	out := make([]int64, 0, len(promotions))
	for _, p := range promotions {
		out = append(out, p.ID)
	}
	return out
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		name    string
		promo   models.Promotion
		running bool
	}{
		{"no end date", models.Promotion{}, true},
		{"ends in the future", models.Promotion{EndDate: at(time.Hour)}, true},
		{"ended in the past", models.Promotion{EndDate: at(-time.Hour)}, false},
		{"ends exactly now", models.Promotion{EndDate: at(0)}, false},
		{"not started yet", models.Promotion{StartDate: at(48 * time.Hour)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.running, promotion.IsActive(tt.promo, now))
		})
	}
}

func TestActive(t *testing.T) {
	tests := []struct {
		name       string
		promotions []models.Promotion
		expected   []int64
	}{
		{
			name:       "nil input",
			promotions: nil,
			expected:   []int64{},
		},
		{
			name: "drops expired",
			promotions: []models.Promotion{
				{ID: 1, EndDate: at(-24 * time.Hour)},
				{ID: 2},
				{ID: 3, EndDate: at(24 * time.Hour)},
			},
			expected: []int64{2, 3},
		},
		{
			name: "all expired",
			promotions: []models.Promotion{
				{ID: 1, EndDate: at(-time.Minute)},
			},
			expected: []int64{},
		},
		{
			name: "highest priority first, nil priority last",
			promotions: []models.Promotion{
				{ID: 1},
				{ID: 2, Priority: prio(1)},
				{ID: 3, Priority: prio(10)},
				{ID: 4, Priority: prio(-2)},
			},
			expected: []int64{3, 2, 4, 1},
		},
		{
			name: "ties ordered by id",
			promotions: []models.Promotion{
				{ID: 9, Priority: prio(5)},
				{ID: 7},
				{ID: 4, Priority: prio(5)},
				{ID: 2},
			},
			expected: []int64{4, 9, 2, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := promotion.Active(tt.promotions, now)
			assert.NotNil(t, got)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestActive_DoesNotModifyInput(t *testing.T) {
	in := []models.Promotion{{ID: 1}, {ID: 2, Priority: prio(3)}}

	promotion.Active(in, now)

	assert.Equal(t, []int64{1, 2}, ids(in))
}
