package models

import (
	"strings"
	"time"
)

// Sentinel values substituted when a field cannot be derived from a card
const (
	UncategorizedLabel = "Uncategorized"
	UnknownPricing     = "Check tool page"
)

// LabelSeparator joins multi-valued fields into their canonical string form
const LabelSeparator = ", "

// ScrapedAtLayout is the timestamp layout used in the record cache and metadata file
const ScrapedAtLayout = "2006-01-02 15:04:05"

// ToolRecord is one listed tool extracted from a directory card
type ToolRecord struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Categories  string    `json:"categories"`
	Pricing     string    `json:"pricing"`
	URL         string    `json:"url"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// CategoryList splits the canonical categories string into labels
func (r ToolRecord) CategoryList() []string {
	return splitLabels(r.Categories)
}

// PricingList splits the canonical pricing string into labels
func (r ToolRecord) PricingList() []string {
	return splitLabels(r.Pricing)
}

func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, LabelSeparator)
}

// JoinLabels builds the canonical form of a label list, falling back to sentinel when empty
func JoinLabels(labels []string, sentinel string) string {
	if len(labels) == 0 {
		return sentinel
	}
	return strings.Join(labels, LabelSeparator)
}

// ScrapeMode selects which listing the orchestrator renders
type ScrapeMode string

const (
	ModeNewlyAdded ScrapeMode = "newly-added"
	ModeFull       ScrapeMode = "full"
	ModeByCategory ScrapeMode = "by-category"
)

// ScrapeRequest describes one orchestrator invocation
type ScrapeRequest struct {
	Mode       ScrapeMode
	Categories []string
	Pricing    []string
}

// ScrapeResult is the output of one orchestrator run
type ScrapeResult struct {
	Mode        ScrapeMode   `json:"mode"`
	RunID       string       `json:"run_id"`
	Records     []ToolRecord `json:"records"`
	Count       int          `json:"count"`
	CompletedAt time.Time    `json:"completed_at"`
}

// CacheMetadata is persisted next to the record cache
type CacheMetadata struct {
	LastUpdate string `json:"last_update"`
	ToolCount  int    `json:"tool_count"`
}

// PageData is a fully rendered document
type PageData struct {
	URL          string    `json:"url"`
	StatusCode   int       `json:"status_code,omitempty"`
	Title        string    `json:"title,omitempty"`
	HTML         string    `json:"html,omitempty"`
	Scrolls      int       `json:"scrolls"`
	Height       int64     `json:"height"`
	FetchedAt    time.Time `json:"fetched_at"`
	ResponseTime int64     `json:"response_time_ms"`
}

// RenderOptions contains options for rendering a listing page
type RenderOptions struct {
	URL          string
	ScrollBudget int
	Timeout      time.Duration
}

// Categories is the category vocabulary offered by the directory
var Categories = []string{
	"AI Detection", "Aggregators", "Automation & Agents", "Avatar", "Chat",
	"Copywriting", "Finance", "For Fun", "Gaming", "Generative Art",
	"Generative Code", "Generative Video", "Image Improvement", "Image Scanning",
	"Inspiration", "Marketing", "Motion Capture", "Music", "Podcasting",
	"Productivity", "Prompt Guides", "Research", "Self-Improvement",
	"Social Media", "Speech-To-Text", "Text-To-Speech", "Translation",
	"Video Editing", "Voice Modulation",
}

// PricingFilters is the pricing vocabulary offered by the directory's filter widget
var PricingFilters = []string{"Free", "Freemium", "GitHub", "Google Colab", "Open Source", "Paid"}
