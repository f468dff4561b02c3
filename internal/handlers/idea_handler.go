package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/breeze/internal/helpers"
	"github.com/joshua-takyi/breeze/internal/models"
	"github.com/joshua-takyi/breeze/internal/render"
	"github.com/joshua-takyi/breeze/internal/services"
	"google.golang.org/genai"
)

type IdeaResult struct {
	Idea   *models.EventIdea `json:"idea"`
	Card   render.Card       `json:"card"`
	Prompt string            `json:"prompt"`
}

// bindCriteria reads JSON criteria; an empty body means no constraints.
func bindCriteria(c *gin.Context) (models.Criteria, error) {
	var criteria models.Criteria
	if err := c.ShouldBindJSON(&criteria); err != nil && !errors.Is(err, io.EOF) {
		return criteria, err
	}
	return criteria, nil
}

func GenerateIdea(ideas *services.IdeaService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := helpers.RequestID(c)

		criteria, err := bindCriteria(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body").WithRequestID(requestID))
			return
		}

		idea, usedPrompt, err := ideas.Generate(c.Request.Context(), criteria)
		if err != nil {
			logger.Error("Error generating event idea", "request_id", requestID, "error", err)
			status, message := failureFor(err)
			c.JSON(status, models.ErrorResponse(message).WithRequestID(requestID))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(IdeaResult{
			Idea:   idea,
			Card:   render.BuildCard(idea),
			Prompt: usedPrompt,
		}, "Event idea generated successfully"))
	}
}

func PreviewPrompt(ideas *services.IdeaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria, err := bindCriteria(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		p, err := ideas.BuildPrompt(criteria)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(invalidInputMessage))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"prompt": p}, ""))
	}
}

func GetSchema(s *genai.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(s, ""))
	}
}
