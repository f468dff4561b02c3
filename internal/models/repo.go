package models

import (
	"context"

	"github.com/go-playground/validator/v10"
	"google.golang.org/genai"
)

var Validate = validator.New()

// ContentGenerator is the slice of the genai Models API the repo needs.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIRepo sends schema-constrained generation requests to Gemini.
type GenAIRepo struct {
	generator         ContentGenerator
	model             string
	systemInstruction string
	schema            *genai.Schema
}

func GenAINewRepo(client *genai.Client, model, systemInstruction string, schema *genai.Schema) *GenAIRepo {
	return GenAINewRepoWithGenerator(client.Models, model, systemInstruction, schema)
}

// GenAINewRepoWithGenerator builds the repo over any ContentGenerator.
func GenAINewRepoWithGenerator(generator ContentGenerator, model, systemInstruction string, schema *genai.Schema) *GenAIRepo {
	return &GenAIRepo{
		generator:         generator,
		model:             model,
		systemInstruction: systemInstruction,
		schema:            schema,
	}
}
