package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"iso date", "2025-03-24", "24/03/2025", true},
		{"canonical day-first", "24/03/2025", "24/03/2025", true},
		{"dash day-first", "24-03-2025", "24/03/2025", true},
		{"two digit year", "24/03/25", "24/03/2025", true},
		{"month-first fallback", "03/24/2025", "24/03/2025", true},
		{"whitespace trimmed", "  24/03/2025 ", "24/03/2025", true},
		{"garbage", "not-a-date", "", false},
		{"empty", "", "", false},
		{"impossible day", "32/01/2025", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeDatePrefersDayFirst(t *testing.T) {
	// 05/03 is ambiguous; the day-first reading must win.
	got, ok := NormalizeDate("05/03/2025")
	assert.True(t, ok)
	assert.Equal(t, "05/03/2025", got)
}

func TestValidCanonicalDate(t *testing.T) {
	assert.True(t, ValidCanonicalDate("24/03/2025"))
	assert.False(t, ValidCanonicalDate("2025-03-24"))
	assert.False(t, ValidCanonicalDate(""))
}
