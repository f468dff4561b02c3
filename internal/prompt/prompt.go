package prompt

import (
	"strings"

	"github.com/joshua-takyi/breeze/internal/models"
)

const (
	criteriaHeader = "Based on the following criteria, generate one event idea:\n"

	// Fallback is sent when no criterion narrows the request.
	Fallback = "Generate a creative and profitable event idea suitable for any time of year."
)

// SystemInstruction sets the consultant persona and the output contract.
const SystemInstruction = `You are an expert event planner and profitability consultant specializing in luxury beachside restaurants in Bali.
Your task is to generate a single, highly detailed, and creative event idea for 'Breeze at The Samaya Seminyak'.
You must consider the restaurant's brand identity (luxury, romantic, beachfront), the target audience, and the local Balinese culture and seasonality.
The idea must be practical, profitable, and enhance the guest experience.
Structure your response as a JSON object that adheres to the provided schema.`

type criterion struct {
	label string
	value func(models.Criteria) string
}

// Bullet order is part of the prompt contract.
var criteria = []criterion{
	{"Month/Season", func(c models.Criteria) string { return c.Month }},
	{"Target Audience", func(c models.Criteria) string { return c.Audience }},
	{"Event Type", func(c models.Criteria) string { return c.Type }},
	{"Primary Goal", func(c models.Criteria) string { return c.Goal }},
	{"Cuisine Focus", func(c models.Criteria) string { return c.Cuisine }},
}

// IsSentinel reports whether v places no constraint on the idea.
func IsSentinel(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, models.AnyOption)
}

// Build turns the form selections into the user prompt.
func Build(c models.Criteria) string {
	var b strings.Builder
	b.WriteString(criteriaHeader)

	lines := 0
	for _, cr := range criteria {
		v := cr.value(c)
		if IsSentinel(v) {
			continue
		}
		b.WriteString("- ")
		b.WriteString(cr.label)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(v))
		b.WriteString("\n")
		lines++
	}

	if lines == 0 {
		return Fallback
	}
	return b.String()
}
