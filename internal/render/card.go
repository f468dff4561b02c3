package render

import (
	"strconv"
	"strings"

	"github.com/joshua-takyi/breeze/internal/models"
)

type Detail struct {
	Key   string `json:"key"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type FinancialEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Card is the display form of an EventIdea.
type Card struct {
	Title         string           `json:"title"`
	Details       []Detail         `json:"details"`
	ShowPromotion bool             `json:"showPromotion"`
	Promotions    []string         `json:"promotions"`
	Financials    []FinancialEntry `json:"financials"`
}

type detailField struct {
	key   string
	icon  string
	label string
	value func(*models.EventIdea) (string, bool)
}

func text(s string) (string, bool) {
	return s, strings.TrimSpace(s) != ""
}

var detailFields = []detailField{
	{"dateSuggestion", "📅", "Date Suggestion", func(i *models.EventIdea) (string, bool) { return text(i.DateSuggestion) }},
	{"targetAudience", "👥", "Target Audience", func(i *models.EventIdea) (string, bool) { return text(i.TargetAudience) }},
	{"guestCapacity", "👨‍👩‍👧‍👦", "Guest Capacity", func(i *models.EventIdea) (string, bool) {
		return FormatCapacity(i.GuestCapacity), i.GuestCapacity > 0
	}},
	{"entertainment", "🎤", "Entertainment", func(i *models.EventIdea) (string, bool) { return text(i.Entertainment) }},
	{"menuConcept", "🍽️", "Menu Concept", func(i *models.EventIdea) (string, bool) { return text(i.MenuConcept) }},
	{"eventObjective", "🎯", "Event Objective", func(i *models.EventIdea) (string, bool) { return text(i.EventObjective) }},
	{"successMetrics", "📈", "Success Metrics", func(i *models.EventIdea) (string, bool) { return text(i.SuccessMetrics) }},
}

// BuildCard lays out idea for display. Absent detail fields are skipped;
// financial entries are always present.
func BuildCard(idea *models.EventIdea) Card {
	card := Card{
		Title:         idea.EventName,
		Details:       make([]Detail, 0, len(detailFields)),
		ShowPromotion: idea.PromotionStrategy != "",
		Promotions:    SplitPromotions(idea.PromotionStrategy),
		Financials: []FinancialEntry{
			{Label: "Cost Estimate", Value: idea.CostEstimate},
			{Label: "Expected Revenue", Value: idea.ExpectedRevenue},
			{Label: "Net Profit", Value: idea.NetProfit},
		},
	}

	for _, f := range detailFields {
		v, ok := f.value(idea)
		if !ok {
			continue
		}
		card.Details = append(card.Details, Detail{Key: f.key, Icon: f.icon, Label: f.label, Value: v})
	}

	return card
}

func isPromotionDelimiter(r rune) bool {
	return r == '•' || r == '-' || r == '*' || r == '\n'
}

// SplitPromotions breaks a promotion strategy into bullet items.
func SplitPromotions(s string) []string {
	items := []string{}
	for _, part := range strings.FieldsFunc(s, isPromotionDelimiter) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func FormatCapacity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
