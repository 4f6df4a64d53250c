package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/kidandcat/taskboard/internal/auth"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	if err := s.auth.StartLogin(in.Email); err != nil {
		if errors.Is(err, auth.ErrUnknownEmail) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"errors": map[string]string{"email": "no account with that email"},
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// handleApproveInfo lets the approval page show who is logging in
// before the token is consumed.
func (s *Server) handleApproveInfo(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	mt, err := s.store.GetMagicToken(token)
	if err != nil || mt.ApprovedAt != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "invalid or expired link"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": mt.Email})
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		var in struct {
			Token string `json:"token"`
		}
		if !readJSON(w, r, &in) {
			return
		}
		token = in.Token
	}
	u, sessionToken, expires, err := s.auth.Approve(token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"errors": map[string]string{"token": "invalid or expired link"},
			})
			return
		}
		writeError(w, err)
		return
	}
	auth.SetSessionCookie(w, sessionToken, expires)
	writeJSON(w, http.StatusOK, map[string]any{"user": NewUserResource(u, s.now())})
}

// handleAuthStatus reports whether a magic token has been approved,
// so the original login tab can poll and pick up the session.
func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	mt, err := s.store.GetMagicToken(token)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"approved": mt.ApprovedAt != nil,
		"expired":  time.Since(mt.CreatedAt) > 15*time.Minute,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(r)
	auth.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
