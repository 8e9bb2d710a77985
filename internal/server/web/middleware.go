package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/server/auth"
	"github.com/dmitrijs2005/aqidash/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const sessionKey ctxKey = "session"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs every request with its status and duration.
func (s *HTTPServer) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// withSession resolves the session referenced by the signed cookie, creating
// a new one when the cookie is absent, invalid or points to an evicted
// session, and refreshes the cookie.
func (s *HTTPServer) withSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, ok := s.lookupSession(r)
		if ok {
			s.sessions.Save(sess)
		} else {
			sess = s.sessions.Create()
		}

		if err := s.setSessionCookie(w, r, sess.ID); err != nil {
			s.logger.Error(ctx, "error signing session token", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ctx = context.WithValue(ctx, sessionKey, &sess)
		next(w, r.WithContext(ctx))
	})
}

func (s *HTTPServer) setSessionCookie(w http.ResponseWriter, r *http.Request, id string) error {
	token, err := auth.GenerateToken(id, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionValidity.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// rotateSession drops sess and replaces it with a fresh landing session
// under a new id, so a cookie captured before logout no longer resolves.
func (s *HTTPServer) rotateSession(w http.ResponseWriter, r *http.Request, sess *models.Session) error {
	s.sessions.Delete(sess.ID)

	fresh := s.sessions.Create()
	fresh.Flashes = sess.Flashes
	s.sessions.Save(fresh)

	*sess = fresh
	return s.setSessionCookie(w, r, fresh.ID)
}

func (s *HTTPServer) lookupSession(r *http.Request) (models.Session, bool) {
	cookie, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return models.Session{}, false
	}

	id, err := auth.GetSessionIDFromToken(cookie.Value, s.jwtSecret)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Warn(r.Context(), "rejected session cookie", "error", err)
		}
		return models.Session{}, false
	}

	return s.sessions.Get(id)
}

// sessionFrom returns the request's working copy of the session. Changes
// are persisted with saveSession.
func sessionFrom(ctx context.Context) *models.Session {
	sess, ok := ctx.Value(sessionKey).(*models.Session)
	if !ok {
		panic("web: handler used without withSession")
	}
	return sess
}

func (s *HTTPServer) saveSession(sess *models.Session) {
	s.sessions.Save(*sess)
}
