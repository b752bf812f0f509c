// Package filter selects tool records by category, pricing and free text.
package filter

import (
	"sort"
	"strings"

	"github.com/law-makers/toolscout/pkg/models"
)

// Criteria describes which records to keep. Zero-valued fields match everything.
type Criteria struct {
	// Query is matched case-insensitively against name and description
	Query      string
	Categories []string
	Pricing    []string
}

// IsEmpty reports whether c keeps every record
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Query) == "" && !c.filtersCategories() && len(c.Pricing) == 0
}

// filtersCategories is false for an empty set and for the full category
// vocabulary, both of which mean "all categories".
func (c Criteria) filtersCategories() bool {
	if len(c.Categories) == 0 {
		return false
	}
	return !coversVocabulary(c.Categories, models.Categories)
}

func coversVocabulary(selected, vocab []string) bool {
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[s] = struct{}{}
	}
	for _, v := range vocab {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

// Matches reports whether rec satisfies every criterion
func (c Criteria) Matches(rec models.ToolRecord) bool {
	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		if !strings.Contains(strings.ToLower(rec.Name), q) &&
			!strings.Contains(strings.ToLower(rec.Description), q) {
			return false
		}
	}
	if c.filtersCategories() && !anyIn(rec.CategoryList(), c.Categories) {
		return false
	}
	if len(c.Pricing) > 0 && !anyIn(rec.PricingList(), c.Pricing) {
		return false
	}
	return true
}

// Apply returns the records matching c, preserving order. The input slice is not modified.
func (c Criteria) Apply(records []models.ToolRecord) []models.ToolRecord {
	filtered := make([]models.ToolRecord, 0, len(records))
	for _, rec := range records {
		if c.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func anyIn(labels, set []string) bool {
	for _, l := range labels {
		for _, s := range set {
			if l == s {
				return true
			}
		}
	}
	return false
}

// Vocabulary returns the sorted distinct category and pricing labels seen in records
func Vocabulary(records []models.ToolRecord) (categories, pricing []string) {
	cats := map[string]struct{}{}
	prices := map[string]struct{}{}
	for _, rec := range records {
		for _, l := range rec.CategoryList() {
			cats[l] = struct{}{}
		}
		for _, l := range rec.PricingList() {
			prices[l] = struct{}{}
		}
	}
	return sortedKeys(cats), sortedKeys(prices)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
