package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/smart-kitchen/backend/internal/api"
	"github.com/pageza/smart-kitchen/backend/internal/mocks"
	"github.com/pageza/smart-kitchen/backend/internal/service"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	generator := new(mocks.MockGenerator)
	tokens := service.NewSessionService("test-secret", time.Hour)
	sessions := service.NewSessionStore()

	return SetupRouter(zap.NewNop(), []string{"http://localhost:3000"}, Handlers{
		Health:      api.NewHealthHandler(nil),
		Generate:    api.NewGenerateHandler(generator),
		Stock:       api.NewStockHandler(tokens, sessions, service.NewSessionGenerator(generator, nil)),
		Generations: api.NewGenerationsHandler(nil, ""),
	})
}

func TestSetupRouter_Routes(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/v1/units", http.StatusOK},
		{http.MethodPost, "/api/v1/sessions", http.StatusCreated},
		{http.MethodGet, "/api/v1/stock", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/stock/generate", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/generations", http.StatusForbidden},
		{http.MethodGet, "/api/v1/recipes", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSetupRouter_CORS(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetupRouter_Units(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/units", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Units   []string `json:"units"`
		Default string   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Unité(s)", body.Default)
	assert.Contains(t, body.Units, "N/A")
	assert.Len(t, body.Units, 10)
}
