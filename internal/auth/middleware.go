package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCatalog/pkg/kit"
)

type ctxKey string

const identityKey ctxKey = "identity"

func IdentityFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(identityKey).(string)
	return v, ok
}

// Rejections counts refused requests by reason ("missing", "invalid").
type Rejections struct {
	counter *prometheus.CounterVec
}

func NewRejections(reg prometheus.Registerer) *Rejections {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_token_rejections_total",
		Help: "Requests refused by the token check",
	}, []string{"reason"})
	reg.MustRegister(c)
	return &Rejections{counter: c}
}

func (r *Rejections) inc(reason string) {
	if r == nil {
		return
	}
	r.counter.WithLabelValues(reason).Inc()
}

// RequireToken lets the request through only with a valid token in the
// Authorization header. Failures answer 403 without a JSON body.
func RequireToken(tm *TokenMaker, log *zap.Logger, rej *Rejections) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, _ := kit.BearerToken(r.Header.Get("Authorization"))

			claims, err := tm.Parse(tok)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, ErrMissing) {
					reason = "missing"
				}
				rej.inc(reason)
				log.Debug("token rejected", zap.String("reason", reason), zap.String("path", r.URL.Path))
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
