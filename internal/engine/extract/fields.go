package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	urlutil "github.com/law-makers/toolscout/internal/utils/url"
	"github.com/law-makers/toolscout/pkg/models"
)

// fieldStrategy yields a candidate value for one field; "" means try the next.
type fieldStrategy func(card *goquery.Selection) string

// firstNonEmpty runs chain in order and returns the first non-empty value.
func firstNonEmpty(card *goquery.Selection, chain []fieldStrategy) string {
	for _, fn := range chain {
		if v := fn(card); v != "" {
			return v
		}
	}
	return ""
}

var nameChain = []fieldStrategy{
	func(card *goquery.Selection) string {
		return cleanText(card.Find("a[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return hasClassToken(s, func(tok string) bool {
				return strings.Contains(tok, "tool-item-link") && !strings.Contains(tok, "tool-item-link-block")
			})
		}).First())
	},
	func(card *goquery.Selection) string { return cleanText(card.Find("h3").First()) },
	func(card *goquery.Selection) string { return cleanText(card.Find("h2").First()) },
}

func extractName(card *goquery.Selection) string {
	return firstNonEmpty(card, nameChain)
}

func extractDescription(card *goquery.Selection) string {
	return cleanText(findByClass(card, "div", "tool-item-description-box").First())
}

// categorySources are tried in order until one yields a label.
var categorySources = []func(card *goquery.Selection) []string{
	categoriesFromCollectionList,
	categoriesFromTagLinks,
}

func extractCategories(card *goquery.Selection) []string {
	for _, src := range categorySources {
		if labels := src(card); len(labels) > 0 {
			return labels
		}
	}
	return nil
}

// categoriesFromCollectionList reads the category chips in the card's
// collection list. Listing and newly-added pages use different chip classes.
func categoriesFromCollectionList(card *goquery.Selection) []string {
	list := findByClass(card, "div", "collection-list-8").First()
	if list.Length() == 0 {
		return nil
	}
	chips := findByClass(list, "div", "text-block-53")
	if chips.Length() == 0 {
		chips = findByClass(list, "div", "black-text-db-gc")
	}
	var labels []string
	chips.Each(func(_ int, s *goquery.Selection) {
		labels = appendUnique(labels, cleanText(s))
	})
	return labels
}

func categoriesFromTagLinks(card *goquery.Selection) []string {
	var labels []string
	card.Find(`a[href*="?tags="]`).Each(func(_ int, s *goquery.Selection) {
		text := cleanText(s)
		if text == "category" {
			return
		}
		labels = appendUnique(labels, text)
	})
	return labels
}

func extractURL(card *goquery.Selection, baseURL string) string {
	link := card.Find(`a[href^="/tools/"]`).First()
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return ""
	}
	return urlutil.JoinOrigin(baseURL, href)
}

// findByClass matches elements of tag with a class token containing substr
func findByClass(s *goquery.Selection, tag, substr string) *goquery.Selection {
	return s.Find(tag + "[class]").FilterFunction(func(_ int, el *goquery.Selection) bool {
		return hasClassToken(el, func(tok string) bool { return strings.Contains(tok, substr) })
	})
}

func hasClassToken(s *goquery.Selection, match func(string) bool) bool {
	class, _ := s.Attr("class")
	for _, tok := range strings.Fields(class) {
		if match(tok) {
			return true
		}
	}
	return false
}

// cleanText is the element's text with whitespace runs collapsed to single spaces
func cleanText(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	return normalizeSpace(s.Text())
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func appendUnique(labels []string, label string) []string {
	if label == "" {
		return labels
	}
	for _, l := range labels {
		if l == label {
			return labels
		}
	}
	return append(labels, label)
}

// joinCategories is the canonical categories value for labels
func joinCategories(labels []string) string {
	return models.JoinLabels(labels, models.UncategorizedLabel)
}
