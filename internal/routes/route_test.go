package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/breeze/internal/config"
	"github.com/joshua-takyi/breeze/internal/container"
	"github.com/joshua-takyi/breeze/internal/helpers"
	"github.com/joshua-takyi/breeze/internal/prompt"
	"github.com/joshua-takyi/breeze/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ideaJSON = `{
  "eventName": "Sunset Jazz & Jimbaran Seafood",
  "dateSuggestion": "Every Friday in August",
  "targetAudience": "Couples",
  "entertainment": "Acoustic duo from Ubud",
  "menuConcept": "Grilled seafood platter",
  "promotionStrategy": "- Run ads\n* Offer discount\n• Partner with hotel",
  "costEstimate": "IDR 25,000,000",
  "expectedRevenue": "IDR 60,000,000",
  "netProfit": "IDR 35,000,000",
  "guestCapacity": 80,
  "eventObjective": "Increase Revenue",
  "successMetrics": "Covers sold"
}`

type repoFunc func(ctx context.Context, p string) (string, error)

func (f repoFunc) GenerateIdea(ctx context.Context, p string) (string, error) {
	return f(ctx, p)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		GeminiAPIKey:       "test",
		GeminiModel:        "gemini-test",
		Environment:        "test",
		AllowedOrigins:     []string{"http://localhost:3000"},
		GenerationTimeout:  5 * time.Second,
		RateLimitPerMinute: 0,
	}
}

func newRouter(t *testing.T, cfg *config.Config, repo repoFunc) *gin.Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := container.NewContainerWithRepo(logger, cfg, repo)
	require.NoError(t, err)
	return SetupRoutes(c)
}

func okRepo(ctx context.Context, p string) (string, error) {
	return ideaJSON, nil
}

func formRequest(values url.Values, fragment bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/ideas", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if fragment {
		req.Header.Set("X-Requested-With", "fetch")
	}
	return req
}

func TestIndexPage(t *testing.T) {
	r := newRouter(t, testConfig(), okRepo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="event-form"`)
	assert.Contains(t, body, `<option value="August">August</option>`)
	assert.Contains(t, body, `class="placeholder"`)
	assert.NotContains(t, body, "disabled")

	var session bool
	for _, ck := range w.Result().Cookies() {
		session = session || ck.Name == helpers.SessionCookie
	}
	assert.True(t, session, "page issues a planner session")
}

func TestStaticAssets(t *testing.T) {
	r := newRouter(t, testConfig(), okRepo)

	for _, path := range []string{"/static/style.css", "/static/app.js"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestSubmitIdeaFragment(t *testing.T) {
	var gotPrompt string
	r := newRouter(t, testConfig(), func(ctx context.Context, p string) (string, error) {
		gotPrompt = p
		return ideaJSON, nil
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, formRequest(url.Values{
		"month": {"August"}, "audience": {"any"}, "type": {"any"}, "goal": {"Increase Revenue"}, "cuisine": {""}, "seq": {"3"},
	}, true))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div class="event-card">`))
	assert.Equal(t, 7, strings.Count(body, `class="detail-item"`))
	assert.Equal(t, 3, strings.Count(body, `class="financial-item"`))
	assert.Equal(t, 3, strings.Count(body, "<li>"))
	assert.Equal(t, "3", w.Header().Get(helpers.SeqHeader))

	assert.Equal(t, "Based on the following criteria, generate one event idea:\n"+
		"- Month/Season: August\n- Primary Goal: Increase Revenue\n", gotPrompt)
}

func TestSubmitIdeaFullPage(t *testing.T) {
	r := newRouter(t, testConfig(), okRepo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, formRequest(url.Values{"month": {"July"}}, false))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Sunset Jazz &amp; Jimbaran Seafood")
	assert.Contains(t, body, `<option value="July" selected>July</option>`)
	assert.NotContains(t, body, "disabled", "submit control is re-enabled")
}

func TestSubmitIdeaFailures(t *testing.T) {
	repos := map[string]repoFunc{
		"rejected call": func(ctx context.Context, p string) (string, error) { return "", errors.New("upstream 500") },
		"invalid json":  func(ctx context.Context, p string) (string, error) { return "Sure! Here's an idea", nil },
	}

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			r := newRouter(t, testConfig(), repo)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, formRequest(url.Values{"month": {"May"}}, true))
			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.Equal(t, `<p class="placeholder error">`+services.UserErrorMessage+`</p>`, w.Body.String())

			w = httptest.NewRecorder()
			r.ServeHTTP(w, formRequest(url.Values{"month": {"May"}}, false))
			body := w.Body.String()
			assert.Equal(t, 1, strings.Count(body, `class="placeholder error"`))
			assert.NotContains(t, body, "upstream 500")
			assert.NotContains(t, body, "disabled", "submit control is re-enabled after a failure")
		})
	}
}

func TestSubmitIdeaInvalidCriteria(t *testing.T) {
	var calls int32
	r := newRouter(t, testConfig(), func(ctx context.Context, p string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return ideaJSON, nil
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, formRequest(url.Values{"month": {strings.Repeat("m", 100)}}, true))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "placeholder error")
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestSupersededSubmissionIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	var calls int32
	r := newRouter(t, testConfig(), func(ctx context.Context, p string) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		}
		return ideaJSON, nil
	})

	cookie := &http.Cookie{Name: helpers.SessionCookie, Value: "6f1c2f1e-2c7a-4a53-9a3e-2d1b7f0f9c11"}

	first := httptest.NewRecorder()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		req := formRequest(url.Values{"month": {"June"}}, false)
		req.AddCookie(cookie)
		r.ServeHTTP(first, req)
	}()

	<-started

	second := httptest.NewRecorder()
	req := formRequest(url.Values{"month": {"July"}}, true)
	req.AddCookie(cookie)
	r.ServeHTTP(second, req)
	wg.Wait()

	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "event-card")

	assert.Equal(t, http.StatusConflict, first.Code)
	body := first.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `<p class="placeholder">`)
	assert.NotContains(t, body, "event-card")
	assert.NotContains(t, body, "disabled", "superseded page is left usable")
}

func TestSubmissionsFromDifferentPagesDoNotCancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	r := newRouter(t, testConfig(), func(ctx context.Context, p string) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			select {
			case <-release:
				return ideaJSON, nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		return ideaJSON, nil
	})

	cookie := &http.Cookie{Name: helpers.SessionCookie, Value: "6f1c2f1e-2c7a-4a53-9a3e-2d1b7f0f9c11"}
	submit := func(w *httptest.ResponseRecorder, page string) {
		req := formRequest(url.Values{"month": {"June"}, helpers.PageField: {page}}, true)
		req.AddCookie(cookie)
		r.ServeHTTP(w, req)
	}

	first := httptest.NewRecorder()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		submit(first, "0b7e3c52-4d0f-4f51-8a65-3f0b9d8f2a10")
	}()

	<-started

	second := httptest.NewRecorder()
	submit(second, "9c4a1d7e-5b2f-4e83-b1c6-7a2d0e4f8b39")
	close(release)
	wg.Wait()

	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, http.StatusOK, first.Code, "another tab must not cancel this one")
	assert.Contains(t, first.Body.String(), "event-card")
}

func TestEmptyPromotionStillRendersCard(t *testing.T) {
	raw := strings.Replace(ideaJSON, `"promotionStrategy": "- Run ads\n* Offer discount\n• Partner with hotel"`, `"promotionStrategy": ""`, 1)
	require.NotEqual(t, ideaJSON, raw)

	r := newRouter(t, testConfig(), func(ctx context.Context, p string) (string, error) {
		return raw, nil
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, formRequest(url.Values{"month": {"August"}}, true))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "event-card")
	assert.NotContains(t, body, "Promotion Strategy")
	assert.NotContains(t, body, "<li>")
	assert.Equal(t, 3, strings.Count(body, `class="financial-item"`))
}

func TestEmptyDetailFieldsAreSkipped(t *testing.T) {
	raw := strings.Replace(ideaJSON, `"entertainment": "Acoustic duo from Ubud"`, `"entertainment": ""`, 1)
	raw = strings.Replace(raw, `"guestCapacity": 80`, `"guestCapacity": 0`, 1)

	r := newRouter(t, testConfig(), func(ctx context.Context, p string) (string, error) {
		return raw, nil
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, formRequest(url.Values{}, true))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 5, strings.Count(body, `class="detail-item"`))
	assert.NotContains(t, body, "Entertainment")
	assert.NotContains(t, body, "Guest Capacity")
}

func TestMalformedFormGetsErrorPlaceholder(t *testing.T) {
	r := newRouter(t, testConfig(), okRepo)

	req := httptest.NewRequest(http.MethodPost, "/ideas", strings.NewReader("month=May"))
	req.Header.Set("Content-Type", "multipart/form-data")
	req.Header.Set("X-Requested-With", "fetch")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), `class="placeholder error"`)
}

func TestGenerateIdeaAPI(t *testing.T) {
	r := newRouter(t, testConfig(), okRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ideas", strings.NewReader(`{"month":"August","cuisine":"any"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Idea struct {
				GuestCapacity float64 `json:"guestCapacity"`
			} `json:"idea"`
			Card struct {
				Title      string   `json:"title"`
				Promotions []string `json:"promotions"`
				Financials []any    `json:"financials"`
			} `json:"card"`
			Prompt string `json:"prompt"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, float64(80), resp.Data.Idea.GuestCapacity)
	assert.Equal(t, "Sunset Jazz & Jimbaran Seafood", resp.Data.Card.Title)
	assert.Len(t, resp.Data.Card.Promotions, 3)
	assert.Len(t, resp.Data.Card.Financials, 3)
	assert.Contains(t, resp.Data.Prompt, "- Month/Season: August")
	assert.NotContains(t, resp.Data.Prompt, "Cuisine")
}

func TestGenerateIdeaAPIEmptyBodyUsesFallback(t *testing.T) {
	var gotPrompt string
	r := newRouter(t, testConfig(), func(ctx context.Context, p string) (string, error) {
		gotPrompt = p
		return ideaJSON, nil
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ideas", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, prompt.Fallback, gotPrompt)
}

func TestGenerateIdeaAPIFailure(t *testing.T) {
	r := newRouter(t, testConfig(), func(ctx context.Context, p string) (string, error) {
		return `{"eventName": 5}`, nil
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ideas", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), services.UserErrorMessage)
	assert.Contains(t, w.Body.String(), "request_id")
}

func TestGenerateIdeaAPIBadBody(t *testing.T) {
	r := newRouter(t, testConfig(), okRepo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ideas", strings.NewReader(`{"month":`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewPromptAPI(t *testing.T) {
	r := newRouter(t, testConfig(), okRepo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/prompt", strings.NewReader(`{"goal":"Attract New Guests"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `- Primary Goal: Attract New Guests`)
}

func TestSchemaAndHealth(t *testing.T) {
	r := newRouter(t, testConfig(), okRepo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/schema", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"guestCapacity"`)
	assert.Contains(t, w.Body.String(), `"NUMBER"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gemini-test")
}

func TestGenerationRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	r := newRouter(t, cfg, okRepo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, formRequest(url.Values{}, true))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, formRequest(url.Values{}, true))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Equal(t, 1, strings.Count(w.Body.String(), `class="placeholder error"`))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, formRequest(url.Values{}, false))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, w.Body.String(), `class="placeholder error"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/ideas", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	// the page itself is not limited
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerationTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.GenerationTimeout = 20 * time.Millisecond
	r := newRouter(t, cfg, func(ctx context.Context, p string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, formRequest(url.Values{"month": {"May"}}, true))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), services.UserErrorMessage)
}
