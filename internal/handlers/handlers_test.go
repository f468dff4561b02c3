package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/breeze/internal/models"
	"github.com/joshua-takyi/breeze/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid criteria", fmt.Errorf("%w: month too long", services.ErrInvalidCriteria), http.StatusBadRequest, invalidInputMessage},
		{"generation failed", fmt.Errorf("%w: boom", services.ErrGenerationFailed), http.StatusBadGateway, services.UserErrorMessage},
		{"deadline", context.DeadlineExceeded, http.StatusBadGateway, services.UserErrorMessage},
		{"anything else", errors.New("unexpected"), http.StatusBadGateway, services.UserErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := failureFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestBindCriteria(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bind := func(body string) (models.Criteria, error) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/ideas", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		return bindCriteria(c)
	}

	criteria, err := bind(`{"month":"March","audience":"Families","cuisine":"Balinese"}`)
	require.NoError(t, err)
	assert.Equal(t, models.Criteria{Month: "March", Audience: "Families", Cuisine: "Balinese"}, criteria)

	criteria, err = bind("")
	require.NoError(t, err)
	assert.Equal(t, models.Criteria{}, criteria)

	_, err = bind(`{"month": 3}`)
	assert.Error(t, err)
}
