package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonAlnumRegex   = regexp.MustCompile(`[^a-z0-9 ]+`)
	multiSpaceRegex = regexp.MustCompile(` +`)
)

// GeneratePlaceSlug generates a URL-friendly slug from a business name and
// the place's numeric id.
// Format: {normalized-name}-{id}
// Example: "AB Plumbing & Heating" + 42 -> "ab-plumbing-heating-42"
func GeneratePlaceSlug(businessName string, placeID int64) string {
	s := strings.ToLower(strings.TrimSpace(businessName))

	// Treat common separators as word boundaries before stripping
	s = strings.NewReplacer("&", " ", "/", " ", "-", " ", "_", " ", ".", " ").Replace(s)

	s = nonAlnumRegex.ReplaceAllString(s, "")
	s = multiSpaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
	s = strings.ReplaceAll(s, " ", "-")

	if s == "" {
		s = "pro"
	}

	// Numeric suffix keeps slugs unique across identically named businesses
	return fmt.Sprintf("%s-%d", s, placeID)
}
