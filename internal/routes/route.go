package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/breeze/internal/container"
	"github.com/joshua-takyi/breeze/internal/handlers"
	"github.com/joshua-takyi/breeze/internal/middleware"
	"github.com/joshua-takyi/breeze/web"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Submission-Seq"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.SetHTMLTemplate(container.PageTemplates)
	r.StaticFS("/static", http.FS(web.Static()))

	// Planner page
	page := r.Group("/")
	page.Use(middleware.Session(container.Config.IsProduction()))
	{
		page.GET("/", handlers.Index(container.Renderer, container.FormOptions))
		page.POST("/ideas",
			middleware.RateLimitWith(container.RateLimiter,
				handlers.RejectSubmission(container.Renderer, container.FormOptions, container.Logger)),
			middleware.Timeout(container.Config.GenerationTimeout),
			handlers.SubmitIdea(
				container.IdeaService,
				container.Sequencer,
				container.Renderer,
				container.FormOptions,
				container.Logger,
			),
		)
	}

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "breeze-planner",
				"model":   container.Config.GeminiModel,
			})
		})

		v1.GET("/schema", handlers.GetSchema(container.Schema))
		v1.POST("/prompt", handlers.PreviewPrompt(container.IdeaService))
		v1.POST("/ideas",
			middleware.RateLimit(container.RateLimiter),
			middleware.Timeout(container.Config.GenerationTimeout),
			handlers.GenerateIdea(container.IdeaService, container.Logger),
		)
	}

	return r
}
