package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/joshua-takyi/breeze/internal/models"
	"github.com/joshua-takyi/breeze/internal/prompt"
	"github.com/joshua-takyi/breeze/internal/schema"
)

// ErrGenerationFailed covers every failure between sending the prompt and
// holding a valid EventIdea: transport, service, parse and contract errors.
var ErrGenerationFailed = errors.New("generation failed")

var ErrInvalidCriteria = errors.New("invalid criteria")

// UserErrorMessage is the only failure text shown to users.
const UserErrorMessage = "Sorry, an error occurred while generating the idea. Please try again."

type IdeaService struct {
	ideaRepo models.IdeaRepo
}

func NewIdeaService(ideaRepo models.IdeaRepo) *IdeaService {
	return &IdeaService{
		ideaRepo: ideaRepo,
	}
}

func (is *IdeaService) BuildPrompt(criteria models.Criteria) (string, error) {
	if err := models.Validate.Struct(criteria); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	return prompt.Build(criteria), nil
}

// Generate asks the model for one idea matching criteria. It returns the
// decoded idea together with the prompt that produced it.
func (is *IdeaService) Generate(ctx context.Context, criteria models.Criteria) (*models.EventIdea, string, error) {
	userPrompt, err := is.BuildPrompt(criteria)
	if err != nil {
		return nil, "", err
	}

	raw, err := is.ideaRepo.GenerateIdea(ctx, userPrompt)
	if err != nil {
		return nil, userPrompt, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	idea, err := DecodeIdea(raw)
	if err != nil {
		return nil, userPrompt, err
	}

	return idea, userPrompt, nil
}

// DecodeIdea parses the model output and checks that every schema key is
// present. Values are trusted as returned: empty text and zero capacity
// are left for the renderer to skip.
func DecodeIdea(raw string) (*models.EventIdea, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %w", ErrGenerationFailed, err)
	}
	for _, name := range slices.Sorted(maps.Keys(schema.Fields)) {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("%w: schema violation: missing %q", ErrGenerationFailed, name)
		}
	}

	var idea models.EventIdea
	if err := json.Unmarshal([]byte(text), &idea); err != nil {
		return nil, fmt.Errorf("%w: schema violation: %w", ErrGenerationFailed, err)
	}

	return &idea, nil
}
