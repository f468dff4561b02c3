package models

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const responseMIMEType = "application/json"

var ErrEmptyCompletion = errors.New("completion returned no text")

type IdeaRepo interface {
	// GenerateIdea returns the raw JSON text produced for prompt.
	GenerateIdea(ctx context.Context, prompt string) (string, error)
}

func (g *GenAIRepo) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.systemInstruction, genai.RoleUser),
		ResponseMIMEType:  responseMIMEType,
		ResponseSchema:    g.schema,
	}
}

func (g *GenAIRepo) GenerateIdea(ctx context.Context, prompt string) (string, error) {
	if g.generator == nil {
		return "", fmt.Errorf("genai client is not configured")
	}

	resp, err := g.generator.GenerateContent(ctx, g.model, genai.Text(prompt), g.generationConfig())
	if err != nil {
		return "", fmt.Errorf("error generating content with %s: %w", g.model, err)
	}
	if resp == nil {
		return "", ErrEmptyCompletion
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
