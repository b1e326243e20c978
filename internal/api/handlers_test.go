package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/reference"
	"kontora/internal/schema"
	"kontora/internal/sqlgen"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	reg := schema.NewRegistry()
	lookups := reference.NewCatalog()
	// без базы: data-маршруты отвечают 503, /api/query работает полностью
	return NewServer(sqlgen.NewDispatcher(reg, lookups), nil, reg, lookups)
}

func doRequest(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestQueryHandlerDryRun(t *testing.T) {
	s := newTestServer()

	w, resp := doRequest(t, s, http.MethodPost, "/api/query",
		`{"entityType":"persons","method":"GET","query":{"search":"Doe","per_page":5}}`)

	require.Equal(t, http.StatusOK, w.Code)
	query, _ := resp["query"].(string)
	assert.Contains(t, query, "FROM persons p")
	assert.Contains(t, query, "LIKE '%Doe%'")
	assert.Contains(t, query, "LIMIT 5 OFFSET 0")
	assert.NotEmpty(t, resp["countQuery"])

	debug, _ := resp["debug"].(map[string]any)
	require.NotNil(t, debug)
	assert.NotEmpty(t, debug["queryId"])
}

func TestQueryHandlerErrors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name string
		body string
		code int
	}{
		{"unknown entity", `{"entityType":"unicorns","method":"GET"}`, http.StatusNotFound},
		{"unknown lookup", `{"entityType":"lookup:unicorns","method":"GET"}`, http.StatusNotFound},
		{"missing id", `{"entityType":"persons","method":"PUT"}`, http.StatusBadRequest},
		{"unsupported method", `{"entityType":"persons","method":"PATCH"}`, http.StatusBadRequest},
		{"translation without code", `{"entityType":"translation","method":"POST","body":{"text":"x"}}`, http.StatusBadRequest},
		{"broken json", `{"entityType":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doRequest(t, s, http.MethodPost, "/api/query", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestDataRoutesWithoutDatabase(t *testing.T) {
	s := newTestServer()

	w, resp := doRequest(t, s, http.MethodGet, "/api/data/persons", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "no database configured", resp["error"])
}

func TestDataRouteUnknownEntity(t *testing.T) {
	s := newTestServer()

	// резолв сущности идёт до проверки наличия базы
	w, _ := doRequest(t, s, http.MethodGet, "/api/data/unicorns", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetaHandlers(t *testing.T) {
	s := newTestServer()

	t.Run("entity list", func(t *testing.T) {
		w, resp := doRequest(t, s, http.MethodGet, "/api/meta", "")
		require.Equal(t, http.StatusOK, w.Code)
		entities, _ := resp["entities"].([]any)
		assert.Len(t, entities, s.registry.Len())
	})

	t.Run("entity detail", func(t *testing.T) {
		w, _ := doRequest(t, s, http.MethodGet, "/api/meta/entities/persons", "")
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = doRequest(t, s, http.MethodGet, "/api/meta/entities/unicorns", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lint", func(t *testing.T) {
		w, resp := doRequest(t, s, http.MethodGet, "/api/meta/lint", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, resp["ok"])
	})

	t.Run("lookups", func(t *testing.T) {
		w, resp := doRequest(t, s, http.MethodGet, "/api/meta/lookups", "")
		require.Equal(t, http.StatusOK, w.Code)
		lookups, _ := resp["lookups"].([]any)
		assert.Len(t, lookups, s.lookups.Len())
	})
}

func TestLookupRouteWithoutDatabase(t *testing.T) {
	s := newTestServer()

	w, _ := doRequest(t, s, http.MethodGet, "/api/lookup/countries", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = doRequest(t, s, http.MethodGet, "/api/lookup/unicorns", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTranslationRouteValidation(t *testing.T) {
	s := newTestServer()

	// составной ключ обязателен до обращения к базе
	w, _ := doRequest(t, s, http.MethodPost, "/api/translations", `{"text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
