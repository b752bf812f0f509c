package filter

import (
	"testing"

	"github.com/law-makers/toolscout/pkg/models"
	"github.com/stretchr/testify/assert"
)

var sample = []models.ToolRecord{
	{Name: "Alpha", Description: "Chat with PDFs", Categories: "Chat, Productivity", Pricing: "Freemium"},
	{Name: "Beta", Description: "Beat maker", Categories: "Music", Pricing: "Paid, Free Trial"},
	{Name: "Gamma", Description: "Image upscaler", Categories: "Image Improvement", Pricing: "Free"},
	{Name: "Delta", Description: "Budget planner", Categories: "Finance", Pricing: "Check tool page"},
}

func names(records []models.ToolRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria", Criteria{}, []string{"Alpha", "Beta", "Gamma", "Delta"}},
		{"one category", Criteria{Categories: []string{"Music"}}, []string{"Beta"}},
		{"any category", Criteria{Categories: []string{"Finance", "Productivity"}}, []string{"Alpha", "Delta"}},
		{"full vocabulary is no filter", Criteria{Categories: models.Categories}, []string{"Alpha", "Beta", "Gamma", "Delta"}},
		{"pricing", Criteria{Pricing: []string{"Free Trial"}}, []string{"Beta"}},
		{"category and pricing", Criteria{Categories: []string{"Music", "Chat"}, Pricing: []string{"Freemium"}}, []string{"Alpha"}},
		{"unknown category matches nothing", Criteria{Categories: []string{"Cooking"}}, []string{}},
		{"query on description", Criteria{Query: "UPSCALER"}, []string{"Gamma"}},
		{"query on name", Criteria{Query: "delt"}, []string{"Delta"}},
		{"blank query ignored", Criteria{Query: "   "}, []string{"Alpha", "Beta", "Gamma", "Delta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(tt.criteria.Apply(sample)))
		})
	}
}

func TestApply_ResultIsSubsetInOrder(t *testing.T) {
	c := Criteria{Pricing: []string{"Free", "Freemium", "Paid"}}
	got := c.Apply(sample)

	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, names(got))
	assert.Len(t, sample, 4)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.True(t, Criteria{Categories: models.Categories}.IsEmpty())
	assert.False(t, Criteria{Pricing: []string{"Paid"}}.IsEmpty())
	assert.False(t, Criteria{Query: "x"}.IsEmpty())
}

func TestVocabulary(t *testing.T) {
	cats, prices := Vocabulary(sample)

	assert.Equal(t, []string{"Chat", "Finance", "Image Improvement", "Music", "Productivity"}, cats)
	assert.Equal(t, []string{"Check tool page", "Free", "Free Trial", "Freemium", "Paid"}, prices)
}
