package container

import (
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/joshua-takyi/breeze/internal/config"
	"github.com/joshua-takyi/breeze/internal/middleware"
	"github.com/joshua-takyi/breeze/internal/models"
	"github.com/joshua-takyi/breeze/internal/prompt"
	"github.com/joshua-takyi/breeze/internal/render"
	"github.com/joshua-takyi/breeze/internal/schema"
	"github.com/joshua-takyi/breeze/internal/services"
	"github.com/joshua-takyi/breeze/web"
	"google.golang.org/genai"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config

	Schema        *genai.Schema
	PageTemplates *template.Template
	FormOptions   models.FormOptions

	IdeaService *services.IdeaService
	Sequencer   *services.Sequencer
	Renderer    *render.Renderer
	RateLimiter *middleware.RateLimiter
}

// NewContainer creates a new dependency injection container backed by Gemini.
func NewContainer(logger *slog.Logger, cfg *config.Config, genaiClient *genai.Client) (*Container, error) {
	responseSchema, err := schema.Load()
	if err != nil {
		return nil, err
	}

	repo := models.GenAINewRepo(genaiClient, cfg.GeminiModel, prompt.SystemInstruction, responseSchema)
	return NewContainerWithRepo(logger, cfg, repo)
}

// NewContainerWithRepo wires everything around an arbitrary IdeaRepo.
func NewContainerWithRepo(logger *slog.Logger, cfg *config.Config, repo models.IdeaRepo) (*Container, error) {
	responseSchema, err := schema.Load()
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}

	pages, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	}

	return &Container{
		Logger:        logger,
		Config:        cfg,
		Schema:        responseSchema,
		PageTemplates: pages,
		FormOptions:   models.DefaultFormOptions(),
		IdeaService:   services.NewIdeaService(repo),
		Sequencer:     services.NewSequencer(),
		Renderer:      renderer,
		RateLimiter:   limiter,
	}, nil
}
