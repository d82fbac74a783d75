package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/search"
)

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"canonical", "00100", "00100", true},
		{"dash and trailing space", "00-100 ", "00100", true},
		{"letters only", "abc", "", false},
		{"empty", "", "", false},
		{"short code is zero padded", "100", "00100", true},
		{"single digit", "7", "00007", true},
		{"mixed letters and digits", "CAP 20121 Milano", "20121", true},
		// Pad-then-truncate keeps the first five digits of longer input.
		{"seven digits truncated", "1234567", "12345", true},
		{"foreign eight digit code truncated", "1234-5678", "12345", true},
		{"non ascii digits ignored", "٠١٢٣٤", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := search.NormalizePostalCode(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
