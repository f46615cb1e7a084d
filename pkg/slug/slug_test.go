package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePlaceSlug(t *testing.T) {
	tests := []struct {
		name     string
		business string
		placeID  int64
		expected string
	}{
		{"simple", "AB Plumbing", 42, "ab-plumbing-42"},
		{"ampersand", "AB Plumbing & Heating", 7, "ab-plumbing-heating-7"},
		{"punctuation", "Joe's Drain Co.", 3, "joes-drain-co-3"},
		{"extra spaces", "  Quick   Fix  ", 1, "quick-fix-1"},
		{"non latin only", "Дом", 9, "pro-9"},
		{"hyphenated", "On-The-Go Detailing", 12, "on-the-go-detailing-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GeneratePlaceSlug(tt.business, tt.placeID))
		})
	}
}
