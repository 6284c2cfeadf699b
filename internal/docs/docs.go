// Package docs serves the embedded OpenAPI document and a swagger-ui page
// that renders it.
package docs

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var YAML []byte

const page = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Catalog API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '{{DOC_URL}}',
        dom_id: '#swagger-ui',
        persistAuthorization: true
      });
    </script>
  </body>
</html>`

// Routes serves the UI at "/" and the document at "/openapi.yaml", relative
// to wherever it is mounted.
func Routes(mountPath string) http.Handler {
	docURL := strings.TrimRight(mountPath, "/") + "/openapi.yaml"
	html := []byte(strings.Replace(page, "{{DOC_URL}}", docURL, 1))

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
	})
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(YAML)
	})
	return r
}
