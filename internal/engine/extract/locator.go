// Package extract turns a rendered listing document into tool records.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CardStrategy is one way of finding tool cards in a listing document
type CardStrategy struct {
	Name string
	Find func(doc *goquery.Selection) *goquery.Selection
}

// DefaultCardStrategies is the card cascade, most specific first.
// The first strategy that matches at least one element wins.
var DefaultCardStrategies = []CardStrategy{
	{
		Name: "webflow-tool-item",
		Find: func(doc *goquery.Selection) *goquery.Selection {
			return doc.Find("div[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
				class, _ := s.Attr("class")
				return strings.Contains(class, "tool") && strings.Contains(class, "w-dyn-item")
			})
		},
	},
	{Name: "tool-card", Find: bySelector("div.tool-card")},
	{Name: "tool-item", Find: bySelector("div.tool-item")},
	{Name: "collection-item", Find: bySelector("div.collection-item")},
	{Name: "article", Find: bySelector("article")},
}

func bySelector(sel string) func(*goquery.Selection) *goquery.Selection {
	return func(doc *goquery.Selection) *goquery.Selection {
		return doc.Find(sel)
	}
}

// LocateCards runs DefaultCardStrategies against doc.
func LocateCards(doc *goquery.Document) ([]*goquery.Selection, string) {
	return LocateCardsWith(doc, DefaultCardStrategies)
}

// LocateCardsWith returns the cards found by the first matching strategy in
// document order together with that strategy's name. Nothing matching is not
// an error: the result is empty and the name is "".
func LocateCardsWith(doc *goquery.Document, strategies []CardStrategy) ([]*goquery.Selection, string) {
	if doc == nil {
		return nil, ""
	}
	for _, st := range strategies {
		found := st.Find(doc.Selection)
		if found.Length() == 0 {
			continue
		}
		cards := make([]*goquery.Selection, 0, found.Length())
		found.Each(func(_ int, s *goquery.Selection) {
			cards = append(cards, s)
		})
		return cards, st.Name
	}
	return nil, ""
}
