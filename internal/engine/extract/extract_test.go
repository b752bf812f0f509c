package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/toolscout/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const baseURL = "https://www.futuretools.io"

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func firstCard(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	cards, _ := LocateCards(parse(t, html))
	require.NotEmpty(t, cards)
	return cards[0]
}

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return New(baseURL, WithClock(func() time.Time { return fixedNow }))
}

func TestLocateCards_Cascade(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		want     int
		strategy string
	}{
		{
			name:     "webflow items win over articles",
			html:     `<div class="tool-item-new w-dyn-item"></div><div class="tool w-dyn-item"></div><article></article>`,
			want:     2,
			strategy: "webflow-tool-item",
		},
		{
			name:     "tool-card",
			html:     `<div class="tool-card"></div><div class="collection-item"></div>`,
			want:     1,
			strategy: "tool-card",
		},
		{
			name:     "tool-item",
			html:     `<div class="tool-item"></div><div class="tool-item"></div>`,
			want:     2,
			strategy: "tool-item",
		},
		{
			name:     "collection-item",
			html:     `<div class="collection-item"></div><article></article>`,
			want:     1,
			strategy: "collection-item",
		},
		{
			name:     "article fallback",
			html:     `<article></article><article></article><article></article>`,
			want:     3,
			strategy: "article",
		},
		{
			name:     "no cards",
			html:     `<div class="header"></div>`,
			want:     0,
			strategy: "",
		},
		{
			name:     "w-dyn-item without tool",
			html:     `<div class="blog w-dyn-item"></div>`,
			want:     0,
			strategy: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, strategy := LocateCards(parse(t, tt.html))
			assert.Len(t, cards, tt.want)
			assert.Equal(t, tt.strategy, strategy)
		})
	}
}

func TestLocateCards_NilDocument(t *testing.T) {
	cards, strategy := LocateCards(nil)
	assert.Empty(t, cards)
	assert.Empty(t, strategy)
}

func TestExtract_FullCard(t *testing.T) {
	card := firstCard(t, `
<div class="tool w-dyn-item">
  <a class="tool-item-link-block" href="/tools/chatbot-x"><img src="x.png"></a>
  <a class="tool-item-link" href="/tools/chatbot-x">  ChatBot
     X </a>
  <div class="tool-item-description-box">An assistant
    for everything.</div>
  <div class="collection-list-8">
    <div class="text-block-53">Chat</div>
    <div class="text-block-53">Productivity</div>
    <div class="text-block-53">Chat</div>
  </div>
  <span>Freemium</span>
</div>`)

	rec, ok := newTestExtractor().Extract(card)
	require.True(t, ok)

	assert.Equal(t, models.ToolRecord{
		Name:        "ChatBot X",
		Description: "An assistant for everything.",
		Categories:  "Chat, Productivity",
		Pricing:     "Freemium",
		URL:         "https://www.futuretools.io/tools/chatbot-x",
		ScrapedAt:   fixedNow,
	}, rec)
}

func TestExtract_NameChain(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "link block is not a name",
			html: `<div class="tool-card"><a class="tool-item-link-block" href="/tools/a">Block</a><h3>Heading</h3></div>`,
			want: "Heading",
		},
		{
			name: "h3 before h2",
			html: `<div class="tool-card"><h2>Second</h2><h3>Third</h3></div>`,
			want: "Third",
		},
		{
			name: "h2 fallback",
			html: `<div class="tool-card"><h2>Only H2</h2></div>`,
			want: "Only H2",
		},
		{
			name: "empty link falls through",
			html: `<div class="tool-card"><a class="tool-item-link"> </a><h3>Heading</h3></div>`,
			want: "Heading",
		},
		{
			name: "link token alongside block token",
			html: `<div class="tool-card"><a class="tool-item-link tool-item-link-block">Both</a></div>`,
			want: "Both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := newTestExtractor().Extract(firstCard(t, tt.html))
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Name)
		})
	}
}

func TestExtract_NamelessCardDiscarded(t *testing.T) {
	_, ok := newTestExtractor().Extract(firstCard(t, `<div class="tool-card"><p>paid tool</p></div>`))
	assert.False(t, ok)
}

func TestExtract_EmptySelection(t *testing.T) {
	_, ok := newTestExtractor().Extract(&goquery.Selection{})
	assert.False(t, ok)
	_, ok = newTestExtractor().Extract(nil)
	assert.False(t, ok)
}

func TestExtract_CategoriesChain(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "newly added chip class",
			html: `<div class="tool-card"><h3>T</h3><div class="collection-list-8 w-dyn-items">
				<div class="black-text-db-gc">Music</div><div class="black-text-db-gc">Podcasting</div></div></div>`,
			want: "Music, Podcasting",
		},
		{
			name: "listing class preferred over newly added class",
			html: `<div class="tool-card"><h3>T</h3><div class="collection-list-8">
				<div class="text-block-53">Chat</div><div class="black-text-db-gc">Music</div></div></div>`,
			want: "Chat",
		},
		{
			name: "tag links when no collection list",
			html: `<div class="tool-card"><h3>T</h3>
				<a href="/?tags=finance">Finance</a><a href="/?tags=x">category</a>
				<a href="/?tags=y"> </a><a href="/?tags=finance">Finance</a><a href="/?tags=gaming">Gaming</a></div>`,
			want: "Finance, Gaming",
		},
		{
			name: "empty collection list falls back to tag links",
			html: `<div class="tool-card"><h3>T</h3><div class="collection-list-8"></div>
				<a href="/?tags=music">Music</a></div>`,
			want: "Music",
		},
		{
			name: "uncategorized",
			html: `<div class="tool-card"><h3>T</h3></div>`,
			want: models.UncategorizedLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := newTestExtractor().Extract(firstCard(t, tt.html))
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Categories)
		})
	}
}

func TestExtract_URL(t *testing.T) {
	rec, ok := newTestExtractor().Extract(firstCard(t,
		`<div class="tool-card"><h3>T</h3><a href="https://external.example">site</a><a href="/tools/t">T</a></div>`))
	require.True(t, ok)
	assert.Equal(t, "https://www.futuretools.io/tools/t", rec.URL)

	rec, ok = newTestExtractor().Extract(firstCard(t, `<div class="tool-card"><h3>T</h3><a href="/blog/t">T</a></div>`))
	require.True(t, ok)
	assert.Equal(t, "", rec.URL)
}

func TestDetectPricing(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Paid plans available, free trial included", []string{"Paid", "Free Trial"}},
		{"FREEMIUM", []string{"Freemium"}},
		{"Open Source on GitHub", []string{"Open Source", "GitHub"}},
		{"Completely free to use", []string{"Free"}},
		{"Start your free trial", []string{"Free Trial"}},
		{"Start your free\n  trial", []string{"Free"}},
		{"Freemium, free trial pricing available", []string{"Free Trial", "Freemium"}},
		{"A writing assistant", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPricing(tt.text))
		})
	}
}

func TestExtract_PricingSentinel(t *testing.T) {
	rec, ok := newTestExtractor().Extract(firstCard(t, `<div class="tool-card"><h3>Writer</h3></div>`))
	require.True(t, ok)
	assert.Equal(t, models.UnknownPricing, rec.Pricing)
}

func TestExtractAll_SkipsBadCardsInOrder(t *testing.T) {
	doc := parse(t, `
<div class="tool w-dyn-item"><a class="tool-item-link" href="/tools/a">Alpha</a></div>
<div class="tool w-dyn-item"><span>no name here</span></div>
<div class="tool w-dyn-item"><a class="tool-item-link" href="/tools/b">Beta</a></div>`)

	records := newTestExtractor().ExtractAll(doc)
	require.Len(t, records, 2)
	assert.Equal(t, "Alpha", records[0].Name)
	assert.Equal(t, "Beta", records[1].Name)
}

func TestExtractAll_NoCards(t *testing.T) {
	records := newTestExtractor().ExtractAll(parse(t, `<main><p>Nothing here</p></main>`))
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestExtractAll_CustomStrategies(t *testing.T) {
	e := New(baseURL, WithCardStrategies([]CardStrategy{
		{Name: "li", Find: bySelector("li")},
	}))
	records := e.ExtractAll(parse(t, `<ul><li><h3>One</h3></li><li><h3>Two</h3></li></ul>`))
	assert.Len(t, records, 2)
}

func TestExtract_PricingUsesRawText(t *testing.T) {
	card := firstCard(t, `<div class="tool-card"><h3>X</h3><p>Totally free</p>
<p>trial of the app</p></div>`)

	rec, ok := newTestExtractor().Extract(card)
	require.True(t, ok)
	assert.Equal(t, "Free", rec.Pricing)
}

func TestExtract_RecoversFromCardPanic(t *testing.T) {
	broken := &goquery.Selection{Nodes: []*html.Node{nil}}

	rec, ok := newTestExtractor().Extract(broken)
	assert.False(t, ok)
	assert.Equal(t, models.ToolRecord{}, rec)
}

func TestExtractAll_BrokenCardKeepsBatch(t *testing.T) {
	doc := parse(t, `
<div class="tool w-dyn-item"><a class="tool-item-link" href="/tools/a">Alpha</a></div>
<div class="tool w-dyn-item"><a class="tool-item-link" href="/tools/b">Beta</a></div>`)

	e := New(baseURL, WithCardStrategies([]CardStrategy{{
		Name: "with-broken",
		Find: func(s *goquery.Selection) *goquery.Selection {
			cards := s.Find("div.w-dyn-item")
			nodes := append([]*html.Node{cards.Nodes[0], nil}, cards.Nodes[1:]...)
			return &goquery.Selection{Nodes: nodes}
		},
	}}), WithClock(func() time.Time { return fixedNow }))

	records := e.ExtractAll(doc)
	require.Len(t, records, 2)
	assert.Equal(t, "Alpha", records[0].Name)
	assert.Equal(t, "Beta", records[1].Name)
}

func TestExtractAll_RepeatableExceptTimestamp(t *testing.T) {
	doc := parse(t, `
<div class="tool w-dyn-item">
  <a class="tool-item-link" href="/tools/a">Alpha</a>
  <div class="tool-item-description-box">Writes things.</div>
  <div class="collection-list-8"><div class="text-block-53">Copywriting</div></div>
  <span>Paid</span>
</div>
<div class="tool w-dyn-item"><a class="tool-item-link" href="/tools/b">Beta</a><p>Open source on GitHub</p></div>`)

	later := fixedNow.Add(time.Hour)
	first := New(baseURL, WithClock(func() time.Time { return fixedNow })).ExtractAll(doc)
	second := New(baseURL, WithClock(func() time.Time { return later })).ExtractAll(doc)
	require.Len(t, first, 2)
	require.Len(t, second, 2)

	for i := range first {
		assert.Equal(t, fixedNow, first[i].ScrapedAt)
		assert.Equal(t, later, second[i].ScrapedAt)
		first[i].ScrapedAt, second[i].ScrapedAt = time.Time{}, time.Time{}
	}
	assert.Equal(t, first, second)
}
