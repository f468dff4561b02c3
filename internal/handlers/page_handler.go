package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/breeze/internal/helpers"
	"github.com/joshua-takyi/breeze/internal/models"
	"github.com/joshua-takyi/breeze/internal/render"
	"github.com/joshua-takyi/breeze/internal/services"
)

const (
	pageTemplate        = "index.tmpl"
	invalidInputMessage = "Please check your selections and try again."
	rateLimitedMessage  = "Too many ideas requested. Please wait a minute and try again."
)

type PageData struct {
	Criteria        models.Criteria
	Options         models.FormOptions
	Output          template.HTML
	ControlsEnabled bool
	Loading         bool
}

// Index serves the planner page with an empty output area.
func Index(r *render.Renderer, options models.FormOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := &render.Output{}
		if err := r.RenderPlaceholder(out); err != nil {
			_ = c.Error(err)
			return
		}

		c.HTML(http.StatusOK, pageTemplate, PageData{
			Criteria:        models.Criteria{},
			Options:         options,
			Output:          out.HTML(),
			ControlsEnabled: true,
		})
	}
}

// SubmitIdea handles the planner form. The page script gets the output
// area as a fragment; plain form posts get the whole page back.
func SubmitIdea(ideas *services.IdeaService, seq *services.Sequencer, r *render.Renderer, options models.FormOptions, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var criteria models.Criteria
		if err := c.ShouldBind(&criteria); err != nil {
			logger.Warn("Rejected planner form", "request_id", helpers.RequestID(c), "error", err)
			respondError(c, r, options, criteria, http.StatusBadRequest, invalidInputMessage, logger)
			return
		}

		if clientSeq := helpers.StringTrim(c.PostForm("seq")); clientSeq != "" {
			c.Header(helpers.SeqHeader, clientSeq)
		}

		ticket := seq.Begin(c.Request.Context(), helpers.SubmissionKey(c))
		defer ticket.Done()

		out := &render.Output{}
		sub := render.NewSubmission(r, out)

		status, stale := runSubmission(c, ideas, ticket, sub, criteria, logger)
		if stale {
			logger.Info("Discarding superseded submission",
				"request_id", helpers.RequestID(c),
				"submission_key", ticket.Session,
				"seq", ticket.Seq,
			)
			// the newer submission owns the output; this one only resets it
			if err := r.RenderPlaceholder(out); err != nil {
				_ = c.Error(err)
				return
			}
		}

		respond(c, status, options, criteria, out, sub)
	}
}

// RejectSubmission answers a rate-limited form post with the error
// placeholder, in the same shape the post would have had.
func RejectSubmission(r *render.Renderer, options models.FormOptions, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondError(c, r, options, models.Criteria{}, http.StatusTooManyRequests, rateLimitedMessage, logger)
		c.Abort()
	}
}

func respondError(c *gin.Context, r *render.Renderer, options models.FormOptions, criteria models.Criteria, status int, message string, logger *slog.Logger) {
	out := &render.Output{}
	if err := r.RenderError(out, message); err != nil {
		logger.Error("Failed to render error placeholder", "request_id", helpers.RequestID(c), "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	respond(c, status, options, criteria, out, render.NewSubmission(r, out))
}

// respond writes the output area alone for the page script, or the whole
// page for plain form posts.
func respond(c *gin.Context, status int, options models.FormOptions, criteria models.Criteria, out *render.Output, sub *render.Submission) {
	if helpers.WantsFragment(c) {
		c.Data(status, "text/html; charset=utf-8", []byte(out.HTML()))
		return
	}

	c.HTML(status, pageTemplate, PageData{
		Criteria:        criteria,
		Options:         options,
		Output:          out.HTML(),
		ControlsEnabled: sub.ControlsEnabled(),
		Loading:         sub.Loading(),
	})
}

// runSubmission drives sub through one generation. The submission is
// always back to idle when it returns.
func runSubmission(c *gin.Context, ideas *services.IdeaService, ticket *services.Ticket, sub *render.Submission, criteria models.Criteria, logger *slog.Logger) (int, bool) {
	defer sub.Finish()

	if err := sub.Begin(); err != nil {
		logger.Error("Failed to start submission", "request_id", helpers.RequestID(c), "error", err)
		return http.StatusInternalServerError, false
	}

	idea, _, err := ideas.Generate(ticket.Ctx, criteria)
	if !ticket.Current() {
		return http.StatusConflict, true
	}

	if err != nil {
		logger.Error("Error generating event idea",
			"request_id", helpers.RequestID(c),
			"session_id", ticket.Session,
			"seq", ticket.Seq,
			"error", err,
		)
		status, message := failureFor(err)
		if renderErr := sub.Fail(message); renderErr != nil {
			logger.Error("Failed to render error placeholder", "request_id", helpers.RequestID(c), "error", renderErr)
			return http.StatusInternalServerError, false
		}
		return status, false
	}

	if err := sub.Succeed(idea); err != nil {
		logger.Error("Failed to render event idea", "request_id", helpers.RequestID(c), "error", err)
		return http.StatusInternalServerError, false
	}

	return http.StatusOK, false
}

func failureFor(err error) (int, string) {
	if errors.Is(err, services.ErrInvalidCriteria) {
		return http.StatusBadRequest, invalidInputMessage
	}
	return http.StatusBadGateway, services.UserErrorMessage
}
