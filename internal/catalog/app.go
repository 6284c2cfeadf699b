package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"MiniCatalog/internal/auth"
	"MiniCatalog/internal/docs"
	"MiniCatalog/pkg/kit"
)

const (
	docsPath = "/api-doc"
	greeting = "Inicio de api"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	CORSOrigins []string

	Tokens           *auth.TokenMaker
	Identity         string
	LoginLimitPerMin int
	TrustProxy       bool
}

// NewHandler assembles the public API: login, the token-gated catalog under
// /api, the docs page and the operational endpoints.
func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	rej := setupMetrics(r, s, deps)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { kit.WriteText(w, http.StatusOK, greeting) })
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.handleReady)

	login := &auth.Server{Log: deps.Log, JWT: deps.Tokens, Identity: deps.Identity}
	login.Register(r, deps.LoginLimitPerMin, deps.TrustProxy)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireToken(deps.Tokens, deps.Log, rej))
		pr.Mount("/api", s.Routes())
	})

	r.Mount(docsPath, docs.Routes(docsPath))

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	cors := kit.DefaultCORSOptions()
	if len(deps.CORSOrigins) > 0 {
		cors.AllowedOrigins = deps.CORSOrigins
	}

	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.SecureHeaders)
	r.Use(kit.CORS(cors))
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) *auth.Rejections {
	if deps.Registry == nil {
		return nil
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	deps.Registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "catalog_products",
		Help: "Products currently held in the catalog",
	}, func() float64 { return float64(s.Store.Len()) }))

	rej := auth.NewRejections(deps.Registry)

	if deps.MetricsEnabled {
		r.With(kit.MetricsAuth(deps.MetricsToken)).
			Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
	return rej
}
