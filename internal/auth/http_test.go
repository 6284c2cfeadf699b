package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"MiniCatalog/internal/auth"
)

const secret = "test-secret-test-secret-test-secret"

func newRouter(t *testing.T, rej *auth.Rejections) (*chi.Mux, *auth.TokenMaker) {
	t.Helper()

	tm := auth.NewTokenMaker(secret, time.Minute)
	s := &auth.Server{Log: zap.NewNop(), JWT: tm, Identity: "Javi"}

	r := chi.NewRouter()
	s.Register(r, 0, false)
	r.With(auth.RequireToken(tm, zap.NewNop(), rej)).Get("/protected", func(w http.ResponseWriter, r *http.Request) {
		name, _ := auth.IdentityFromContext(r.Context())
		_, _ = w.Write([]byte(name))
	})
	return r, tm
}

func TestLogin_IssuesToken(t *testing.T) {
	r, tm := newRouter(t, nil)

	for _, body := range []string{"", `{"nombre":"x","email":"x@y.z"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		assert.Equal(t, resp.Token, rec.Header().Get("Authorization"))
		assert.NoError(t, tm.Validate(resp.Token))
	}
}

func TestLogin_BadJSON(t *testing.T) {
	r, _ := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireToken(t *testing.T) {
	reg := prometheus.NewRegistry()
	rej := auth.NewRejections(reg)
	r, tm := newRouter(t, rej)

	tok, err := tm.Issue("Javi")
	require.NoError(t, err)

	cases := []struct {
		name  string
		authz string
		want  int
	}{
		{"missing", "", http.StatusForbidden},
		{"scheme only", "Bearer ", http.StatusForbidden},
		{"garbage", "Bearer garbage", http.StatusForbidden},
		{"bearer", "Bearer " + tok, http.StatusOK},
		{"raw", tok, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authz != "" {
				req.Header.Set("Authorization", tc.authz)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusOK {
				assert.Equal(t, "Javi", rec.Body.String())
			}
		})
	}

	mfs, err := reg.Gather()
	require.NoError(t, err)

	byReason := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "auth_token_rejections_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "reason" {
					byReason[lp.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"missing": 2, "invalid": 1}, byReason)
}
