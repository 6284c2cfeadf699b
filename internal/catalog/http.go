package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"MiniCatalog/internal/auth"
	"MiniCatalog/pkg/kit"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type Server struct {
	Store Store
	Log   *zap.Logger
}

// productReq uses pointers so that a zero price or brand still counts as present.
type productReq struct {
	Name  *string  `json:"nombre" validate:"required"`
	Price *float64 `json:"precio" validate:"required"`
	Brand *int     `json:"marca" validate:"required"`
	Line  *int     `json:"linea" validate:"required"`
}

func (p productReq) fields() Fields {
	return Fields{Name: *p.Name, Price: *p.Price, Brand: *p.Brand, Line: *p.Line}
}

type listResp struct {
	Productos []Product `json:"productos"`
}

// Routes returns the product, brand and line endpoints. Callers wrap them with
// the token check.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/productos", func(rr chi.Router) {
		rr.Get("/", s.list)
		rr.Post("/", s.create)
		rr.Get("/{id}", s.getByID)
		rr.Put("/{id}", s.update)
		rr.Delete("/{id}", s.delete)
	})
	r.Get("/marca/{marca}", s.getByBrand)
	r.Get("/linea/{linea}", s.getByLine)

	return r
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.log().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.serverError(w, r, "list products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, listResp{Productos: products})
}

func (s *Server) getByID(w http.ResponseWriter, r *http.Request) {
	s.lookup(w, r, "id", s.Store.GetByID)
}

func (s *Server) getByBrand(w http.ResponseWriter, r *http.Request) {
	s.lookup(w, r, "marca", s.Store.GetByBrand)
}

func (s *Server) getByLine(w http.ResponseWriter, r *http.Request) {
	s.lookup(w, r, "linea", s.Store.GetByLine)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request, param string, find func(context.Context, int) ([]Product, error)) {
	key, ok := intParam(w, r, param)
	if !ok {
		return
	}

	products, err := find(r.Context(), key)
	if err != nil {
		s.serverError(w, r, "lookup failed", err, zap.String("param", param), zap.Int("key", key))
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	p, err := s.Store.Create(r.Context(), req.fields())
	switch {
	case errors.Is(err, ErrEmptyCatalog):
		kit.WriteError(w, r, http.StatusConflict, "catalog is empty", nil)
		return
	case err != nil:
		s.serverError(w, r, "create product failed", err)
		return
	}

	s.log().Info("product created", zap.Int("id", p.ID), identityField(r))
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	p, err := s.Store.Update(r.Context(), id, req.fields())
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	case err != nil:
		s.serverError(w, r, "update product failed", err, zap.Int("id", id))
		return
	}

	s.log().Info("product updated", zap.Int("id", id), identityField(r))
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	err := s.Store.Delete(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteJSON(w, http.StatusNotFound, kit.ResultResponse{Result: "not found"})
		return
	case err != nil:
		s.serverError(w, r, "delete product failed", err, zap.Int("id", id))
		return
	}

	s.log().Info("product deleted", zap.Int("id", id), identityField(r))
	kit.WriteJSON(w, http.StatusOK, kit.ResultResponse{Result: 1})
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad "+name, map[string]any{name: raw})
		return 0, false
	}
	return n, true
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (productReq, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	var req productReq
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return productReq{}, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": "extra data after json object"})
		return productReq{}, false
	}

	if err := validate.Struct(req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "missing fields", map[string]any{"fields": missingFields(err)})
		return productReq{}, false
	}
	return req, true
}

func missingFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field())
	}
	return out
}

func identityField(r *http.Request) zap.Field {
	name, _ := auth.IdentityFromContext(r.Context())
	return zap.String("identity", name)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	s.log().Error(msg, append(fields, zap.Error(err))...)
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
