package extract

import (
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/toolscout/internal/engine"
	"github.com/law-makers/toolscout/pkg/models"
	"github.com/rs/zerolog/log"
)

// Extractor builds ToolRecords from tool cards
type Extractor struct {
	baseURL    string
	strategies []CardStrategy
	now        func() time.Time
}

// Option customises an Extractor
type Option func(*Extractor)

// WithClock sets the clock used for ScrapedAt
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithCardStrategies replaces the card cascade
func WithCardStrategies(strategies []CardStrategy) Option {
	return func(e *Extractor) { e.strategies = strategies }
}

// New creates an Extractor that resolves relative tool links against baseURL
func New(baseURL string, opts ...Option) *Extractor {
	e := &Extractor{
		baseURL:    baseURL,
		strategies: DefaultCardStrategies,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses one card. ok is false when the card has no name or could
// not be parsed; such cards are skipped by callers.
func (e *Extractor) Extract(card *goquery.Selection) (rec models.ToolRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := engine.CardParseError("card parse panicked", fmt.Errorf("%v", r))
			log.Warn().Err(err).Str("code", string(engine.ErrCodeCardParse)).Msg("Skipping card")
			rec, ok = models.ToolRecord{}, false
		}
	}()

	if card == nil || card.Length() == 0 {
		return models.ToolRecord{}, false
	}

	name := extractName(card)
	if name == "" {
		log.Debug().Msg("Card has no name, skipping")
		return models.ToolRecord{}, false
	}

	rec = models.ToolRecord{
		Name:        name,
		Description: extractDescription(card),
		Categories:  joinCategories(extractCategories(card)),
		Pricing:     models.JoinLabels(DetectPricing(card.Text()), models.UnknownPricing),
		URL:         extractURL(card, e.baseURL),
		ScrapedAt:   e.now(),
	}
	return rec, true
}

// Locate finds the cards in doc using the extractor's cascade
func (e *Extractor) Locate(doc *goquery.Document) ([]*goquery.Selection, string) {
	return LocateCardsWith(doc, e.strategies)
}

// ExtractAll locates every card in doc and extracts them in document order.
func (e *Extractor) ExtractAll(doc *goquery.Document) []models.ToolRecord {
	cards, strategy := e.Locate(doc)
	log.Debug().Int("cards", len(cards)).Str("strategy", strategy).Msg("Located tool cards")

	records := make([]models.ToolRecord, 0, len(cards))
	skipped := 0
	for _, card := range cards {
		rec, ok := e.Extract(card)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("Cards skipped during extraction")
	}
	return records
}
