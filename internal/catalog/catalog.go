package catalog

import (
	"sort"
	"strings"

	"github.com/tavvy/tavvy-pros-api/internal/wizard"
)

// Category is a top-level entry in the catalog tree for one provider type
type Category struct {
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory carries a list of suggested services shown as quick-add
// options on the services step.
type Subcategory struct {
	Name              string   `json:"name"`
	SuggestedServices []string `json:"suggestedServices"`
}

// CategoriesFor returns the category list for a provider type, or nil for an
// unknown type. The returned slice is shared; callers must not mutate it.
func CategoriesFor(pt wizard.ProviderType) []Category {
	return catalog[pt]
}

// CategoryNamesFor returns just the category names for a provider type
func CategoryNamesFor(pt wizard.ProviderType) []string {
	cats := catalog[pt]
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names
}

// SubcategoriesFor returns the subcategories of a category under a provider
// type, or nil when the category does not exist there.
func SubcategoriesFor(pt wizard.ProviderType, category string) []Subcategory {
	for _, c := range catalog[pt] {
		if c.Name == category {
			return c.Subcategories
		}
	}
	return nil
}

// SubcategoryNamesFor returns just the subcategory names for a category
func SubcategoryNamesFor(pt wizard.ProviderType, category string) []string {
	subs := SubcategoriesFor(pt, category)
	names := make([]string, 0, len(subs))
	for _, s := range subs {
		names = append(names, s.Name)
	}
	return names
}

// ValidCategory reports whether the category exists under the provider type
func ValidCategory(pt wizard.ProviderType, category string) bool {
	for _, c := range catalog[pt] {
		if c.Name == category {
			return true
		}
	}
	return false
}

// ValidSubcategories reports whether every selection belongs to the given
// category's subcategory set. An empty selection is trivially valid.
func ValidSubcategories(pt wizard.ProviderType, category string, selections []string) bool {
	subs := SubcategoriesFor(pt, category)
	if subs == nil {
		return len(selections) == 0
	}
	valid := make(map[string]bool, len(subs))
	for _, s := range subs {
		valid[s.Name] = true
	}
	for _, sel := range selections {
		if !valid[sel] {
			return false
		}
	}
	return true
}

// SuggestedServicesFor returns the quick-add service suggestions for the
// selected subcategories, deduplicated and in selection order.
func SuggestedServicesFor(pt wizard.ProviderType, category string, selections []string) []string {
	byName := make(map[string]Subcategory)
	for _, s := range SubcategoriesFor(pt, category) {
		byName[s.Name] = s
	}

	seen := make(map[string]bool)
	suggestions := []string{}
	for _, sel := range selections {
		for _, svc := range byName[sel].SuggestedServices {
			if !seen[svc] {
				seen[svc] = true
				suggestions = append(suggestions, svc)
			}
		}
	}
	return suggestions
}

// Search returns category names across all provider types whose name
// contains the query, case-insensitive, sorted alphabetically. Used by the
// public directory's category autocomplete.
func Search(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []string{}
	}

	seen := make(map[string]bool)
	matches := []string{}
	for _, cats := range catalog {
		for _, c := range cats {
			if seen[c.Name] {
				continue
			}
			if strings.Contains(strings.ToLower(c.Name), query) {
				seen[c.Name] = true
				matches = append(matches, c.Name)
				continue
			}
			for _, s := range c.Subcategories {
				if strings.Contains(strings.ToLower(s.Name), query) {
					seen[c.Name] = true
					matches = append(matches, c.Name)
					break
				}
			}
		}
	}
	sort.Strings(matches)
	return matches
}

// FlatCategories returns every category name across all provider types,
// sorted alphabetically. Category sets are disjoint per provider type so no
// deduplication is needed, but it is cheap and guards the data.
func FlatCategories() []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, cats := range catalog {
		for _, c := range cats {
			if !seen[c.Name] {
				seen[c.Name] = true
				names = append(names, c.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}
