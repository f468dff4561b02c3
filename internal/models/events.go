package models

// EventIdea is one generated event proposal. It is built per request from
// the model's JSON output and discarded once rendered. Key presence is
// checked against the schema when decoding; values are not.
type EventIdea struct {
	EventName         string  `json:"eventName"`         // e.g., "Sunset Jazz & Jimbaran Seafood"
	DateSuggestion    string  `json:"dateSuggestion"`    // e.g., "Every Friday in August"
	TargetAudience    string  `json:"targetAudience"`    // e.g., "Couples on honeymoon"
	Entertainment     string  `json:"entertainment"`     // e.g., "Acoustic duo from Ubud"
	MenuConcept       string  `json:"menuConcept"`       // e.g., "Five-course Balinese tasting"
	PromotionStrategy string  `json:"promotionStrategy"` // bullets split on • - * or newline
	CostEstimate      string  `json:"costEstimate"`      // e.g., "IDR 25,000,000"
	ExpectedRevenue   string  `json:"expectedRevenue"`   // e.g., "IDR 60,000,000"
	NetProfit         string  `json:"netProfit"`         // e.g., "IDR 35,000,000"
	GuestCapacity     float64 `json:"guestCapacity"`
	EventObjective    string  `json:"eventObjective"`
	SuccessMetrics    string  `json:"successMetrics"`
}

// Criteria holds the planner form selections. "any" or an empty value
// means no constraint for that field.
type Criteria struct {
	Month    string `form:"month" json:"month" validate:"max=64"`
	Audience string `form:"audience" json:"audience" validate:"max=64"`
	Type     string `form:"type" json:"type" validate:"max=64"`
	Goal     string `form:"goal" json:"goal" validate:"max=64"`
	Cuisine  string `form:"cuisine" json:"cuisine" validate:"max=120"`
}

// AnyOption is the sentinel form value meaning "no constraint".
const AnyOption = "any"

// FormOptions lists the choices offered by the planner form selects.
// Cuisine is free text.
type FormOptions struct {
	Months    []string
	Audiences []string
	Types     []string
	Goals     []string
}

func DefaultFormOptions() FormOptions {
	return FormOptions{
		Months: []string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
			"Dry Season", "Rainy Season", "Nyepi Week", "Galungan & Kuningan", "Christmas & New Year",
		},
		Audiences: []string{
			"Couples", "Honeymooners", "Families", "Expats", "International Tourists",
			"Domestic Tourists", "Corporate Groups", "Local Residents",
		},
		Types: []string{
			"Live Music Night", "Themed Dinner", "Sunset Party", "Cooking Class",
			"Wine Pairing", "Cultural Performance", "Wellness Brunch", "Private Celebration",
		},
		Goals: []string{
			"Increase Revenue", "Boost Off-Peak Sales", "Attract New Guests",
			"Build Brand Awareness", "Reward Loyal Guests", "Increase Average Spend",
		},
	}
}
