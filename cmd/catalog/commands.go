package main

import (
	"fmt"
	"net/http"
	"sort"
	"text/tabwriter"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"MiniCatalog/internal/auth"
	"MiniCatalog/internal/catalog"
	"MiniCatalog/internal/config"
	"MiniCatalog/pkg/kit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a token for the configured login identity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		tok, err := auth.NewTokenMaker(cfg.JWTSecret, cfg.TokenTTL).Issue(cfg.LoginIdentity)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the registered routes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		routes, ok := newHandler(cfg, zap.NewNop()).(chi.Routes)
		if !ok {
			return fmt.Errorf("handler does not expose its routes")
		}

		type route struct{ method, path string }
		var all []route
		err = chi.Walk(routes, func(method, path string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			all = append(all, route{method, path})
			return nil
		})
		if err != nil {
			return err
		}

		sort.Slice(all, func(i, j int) bool {
			if all[i].path != all[j].path {
				return all[i].path < all[j].path
			}
			return all[i].method < all[j].method
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		for _, r := range all {
			fmt.Fprintf(w, "%s\t%s\n", r.method, r.path)
		}
		return w.Flush()
	},
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	log.Info("config loaded",
		zap.Int("port", cfg.Port),
		zap.Duration("token_ttl", cfg.TokenTTL),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
	)

	return kit.RunHTTPServer(cmd.Context(), cfg.Addr(), newHandler(cfg, log), log, cfg.ShutdownTimeout)
}

func newHandler(cfg *config.Config, log *zap.Logger) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &catalog.Server{Store: catalog.NewStore(), Log: log}

	return catalog.NewHandler(s, catalog.HTTPDeps{
		Log:              log,
		Service:          service,
		Registry:         reg,
		MetricsEnabled:   cfg.MetricsEnabled,
		MetricsToken:     cfg.MetricsToken,
		CORSOrigins:      cfg.CORSOrigins,
		Tokens:           auth.NewTokenMaker(cfg.JWTSecret, cfg.TokenTTL),
		Identity:         cfg.LoginIdentity,
		LoginLimitPerMin: cfg.LoginLimit,
		TrustProxy:       cfg.TrustProxy,
	})
}
