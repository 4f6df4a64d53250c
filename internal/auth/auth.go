// Package auth implements magic-link login and cookie sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kidandcat/taskboard/internal/config"
	"github.com/kidandcat/taskboard/internal/model"
	"github.com/kidandcat/taskboard/internal/store"
)

// Magic links are single use and short lived.
const magicTokenTTL = 15 * time.Minute

const sessionCookie = "session"

var (
	ErrUnknownEmail = errors.New("no account with that email")
	ErrInvalidToken = errors.New("invalid or expired token")
)

type contextKey string

const userKey contextKey = "user"

type Service struct {
	store  *store.Store
	cfg    *config.Config
	mailer Mailer
}

func NewService(st *store.Store, cfg *config.Config) *Service {
	return &Service{store: st, cfg: cfg, mailer: smtpMailer{cfg: cfg}}
}

// SetMailer swaps the delivery mechanism, used by tests.
func (s *Service) SetMailer(m Mailer) { s.mailer = m }

func newToken() string {
	return uuid.NewString()
}

// StartLogin creates a magic token for an existing account and mails
// the approval link.
func (s *Service) StartLogin(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrUnknownEmail
	}
	if _, err := s.store.GetUserByEmail(email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	token := newToken()
	if err := s.store.CreateMagicToken(email, token); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/approve?token=%s", s.cfg.BaseURL, token)
	go s.mailer.SendMagicLink(email, link)
	log.Printf("Magic link for %s: %s", email, link)
	return nil
}

// Approve consumes a magic token and opens a session, returning the
// logged-in user and the session token for the cookie.
func (s *Service) Approve(token string) (*model.User, string, time.Time, error) {
	mt, err := s.store.GetMagicToken(token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", time.Time{}, ErrInvalidToken
	}
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if mt.ApprovedAt != nil || time.Since(mt.CreatedAt) > magicTokenTTL {
		return nil, "", time.Time{}, ErrInvalidToken
	}

	u, err := s.store.GetUserByEmail(mt.Email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidToken
	}
	if err := s.store.ApproveMagicToken(mt.ID); err != nil {
		return nil, "", time.Time{}, err
	}

	sessionToken := newToken()
	expires := time.Now().Add(time.Duration(s.cfg.SessionTTLHours) * time.Hour)
	if err := s.store.CreateSession(u.ID, sessionToken, expires); err != nil {
		return nil, "", time.Time{}, err
	}
	return u, sessionToken, expires, nil
}

// Logout deletes the session behind the request's cookie, if any.
func (s *Service) Logout(r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.store.DeleteSession(cookie.Value)
	}
}

// SetSessionCookie writes the session cookie on a login response.
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, MaxAge: -1, Path: "/"})
}

// CurrentUser returns the authenticated user placed in the request
// context by Middleware, or nil.
func CurrentUser(r *http.Request) *model.User {
	if u, ok := r.Context().Value(userKey).(*model.User); ok {
		return u
	}
	return nil
}

// WithUser returns a request carrying u in its context, used by tests
// to exercise handlers without a full login flow.
func WithUser(r *http.Request, u *model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, u))
}

// Middleware resolves the session cookie to a user and rejects
// unauthenticated requests before any other check runs.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			unauthenticated(w)
			return
		}
		sess, err := s.store.GetSession(cookie.Value)
		if err != nil || time.Now().After(sess.ExpiresAt) {
			ClearSessionCookie(w)
			unauthenticated(w)
			return
		}
		u, err := s.store.GetUser(sess.UserID)
		if err != nil {
			unauthenticated(w)
			return
		}
		next.ServeHTTP(w, WithUser(r, u))
	})
}

// RequireAdmin gates a handler on the admin role.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)
		if u == nil || !u.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"forbidden"}`))
			return
		}
		next(w, r)
	}
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthenticated"}`))
}
