package auth

import (
	"time"

	"github.com/go-chi/chi/v5"

	"MiniCatalog/pkg/kit"
)

const limitWindow = 60 * time.Second

// Register mounts the login route. loginLimitPerMin <= 0 disables rate limiting.
// trustProxy keys the limiter on X-Forwarded-For instead of the peer address.
func (s *Server) Register(r chi.Router, loginLimitPerMin int, trustProxy bool) {
	limiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindow)
	limiter.TrustProxy = trustProxy
	r.With(limiter.Middleware).Post("/api/login", s.HandleLogin)
}
