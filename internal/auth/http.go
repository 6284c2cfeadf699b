package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"MiniCatalog/pkg/kit"
)

const maxBodyBytes = 1 << 20

// Server issues tokens for a single configured identity. There is no user
// store; the login body is read but never checked.
type Server struct {
	Log      *zap.Logger
	JWT      *TokenMaker
	Identity string
}

type loginReq struct {
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

type loginResp struct {
	Token string `json:"token"`
}

func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	tok, err := s.JWT.Issue(s.Identity)
	if err != nil {
		s.log().Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.Header().Set("Authorization", tok)
	kit.WriteJSON(w, http.StatusOK, loginResp{Token: tok})
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
