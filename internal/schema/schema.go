// Package schema holds the declarative output contract sent with every
// generation request. The artifact is embedded, parsed and checked once;
// callers share the parsed value read-only.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"google.golang.org/genai"
)

//go:embed event_idea.json
var eventIdeaSchema []byte

// Fields maps every EventIdea JSON key to its schema type.
var Fields = map[string]genai.Type{
	"eventName":         genai.TypeString,
	"dateSuggestion":    genai.TypeString,
	"targetAudience":    genai.TypeString,
	"entertainment":     genai.TypeString,
	"menuConcept":       genai.TypeString,
	"promotionStrategy": genai.TypeString,
	"costEstimate":      genai.TypeString,
	"expectedRevenue":   genai.TypeString,
	"netProfit":         genai.TypeString,
	"guestCapacity":     genai.TypeNumber,
	"eventObjective":    genai.TypeString,
	"successMetrics":    genai.TypeString,
}

var (
	loadOnce sync.Once
	loaded   *genai.Schema
	loadErr  error
)

// Load returns the parsed EventIdea schema. Parsing and validation run once.
func Load() (*genai.Schema, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(eventIdeaSchema)
	})
	return loaded, loadErr
}

// Raw returns a copy of the embedded artifact.
func Raw() []byte {
	return slices.Clone(eventIdeaSchema)
}

// Parse decodes a schema artifact and validates it against Fields.
func Parse(data []byte) (*genai.Schema, error) {
	var s genai.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode event idea schema: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that s describes exactly the EventIdea contract.
func Validate(s *genai.Schema) error {
	if s == nil {
		return fmt.Errorf("schema is nil")
	}
	if s.Type != genai.TypeObject {
		return fmt.Errorf("schema root must be %s, got %q", genai.TypeObject, s.Type)
	}
	if len(s.Properties) != len(Fields) {
		return fmt.Errorf("schema must declare %d properties, got %d", len(Fields), len(s.Properties))
	}

	for name, want := range Fields {
		prop, ok := s.Properties[name]
		if !ok || prop == nil {
			return fmt.Errorf("schema is missing property %q", name)
		}
		if prop.Type != want {
			return fmt.Errorf("property %q must be %s, got %q", name, want, prop.Type)
		}
		if !slices.Contains(s.Required, name) {
			return fmt.Errorf("property %q must be required", name)
		}
	}

	for _, name := range s.Required {
		if _, ok := Fields[name]; !ok {
			return fmt.Errorf("required property %q is not declared", name)
		}
	}

	return nil
}
