package docs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOpenAPIDocumentsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(YAML, &doc))
	assert.Equal(t, "3.0.0", doc.OpenAPI)

	want := map[string][]string{
		"/api/login":          {"post"},
		"/api/productos":      {"get", "post"},
		"/api/productos/{id}": {"get", "put", "delete"},
		"/api/marca/{marca}":  {"get"},
		"/api/linea/{linea}":  {"get"},
	}
	for path, methods := range want {
		ops, ok := doc.Paths[path]
		require.True(t, ok, "path %s not documented", path)
		for _, m := range methods {
			assert.Contains(t, ops, m, "%s %s not documented", m, path)
		}
	}
}

func TestRoutes(t *testing.T) {
	h := Routes("/api-doc")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "url: '/api-doc/openapi.yaml'")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, YAML, rec.Body.Bytes())
}
