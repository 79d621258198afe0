package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"miniblog/app/models"
	"miniblog/app/sessions"

	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

type contextKey int

const sessionContextKey contextKey = iota

// CurrentSession returns the authenticated session attached to the request
// by LoadSession, or nil for anonymous requests.
func CurrentSession(r *http.Request) *models.Session {
	session, _ := r.Context().Value(sessionContextKey).(*models.Session)
	return session
}

// WithSession returns a copy of the request carrying the given session.
// Handlers read the session from the request, never from a global, so
// tests can exercise them without a live store.
func WithSession(r *http.Request, session *models.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionContextKey, session))
}

// SessionToken returns the raw session token from the request cookie, or
// an empty string when the cookie is absent.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// LoadSession resolves the session cookie against the store and attaches
// the session snapshot to the request context. Requests without a valid
// session pass through unauthenticated.
func LoadSession(store *sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := SessionToken(r); token != "" {
				if session := store.Get(token); session != nil {
					r = WithSession(r, session)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession redirects unauthenticated requests to the login page.
// Used by the web surface.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentSession(r) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSessionJSON rejects unauthenticated requests with a 401 JSON
// body. Used by the API surface.
func RequireSessionJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentSession(r) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MethodOverride rewrites POST requests carrying a _method form field into
// PUT or DELETE, so plain HTML forms can drive those routes.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err == nil {
				switch r.PostForm.Get("_method") {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs method, path, status and duration for each request.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			log.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", recorder.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recoverer recovers from panics, logs them, and responds 500.
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
					)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
