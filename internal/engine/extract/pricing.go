package extract

import "strings"

// pricingKeyword maps a lower-case substring of card text to a pricing label
type pricingKeyword struct {
	keyword string
	label   string
}

// pricingKeywords is checked in order; every match contributes its label once.
var pricingKeywords = []pricingKeyword{
	{"paid", "Paid"},
	{"free trial", "Free Trial"},
	{"freemium", "Freemium"},
	{"open source", "Open Source"},
	{"github", "GitHub"},
}

// DetectPricing derives pricing labels from raw card text. The text is only
// lower-cased, so "free" and "trial" on separate lines do not form "free trial".
// It returns nil when nothing matches.
//
// "Free" is only reported when no other label matched and the text mentions
// "free" outside of "free trial". A card saying "freemium" therefore yields
// Freemium alone.
func DetectPricing(text string) []string {
	lower := strings.ToLower(text)

	var labels []string
	for _, kw := range pricingKeywords {
		if strings.Contains(lower, kw.keyword) {
			labels = appendUnique(labels, kw.label)
		}
	}
	if len(labels) == 0 && strings.Contains(lower, "free") && !strings.Contains(lower, "free trial") {
		labels = append(labels, "Free")
	}
	return labels
}
