package httpapi

import (
	"net/http"
	"time"

	"github.com/azarubkin/classnotes/internal/server/auth"
	"strings"
)

const sessionName = "classnotes-session"

// authedHandler is a handler that runs with an already-resolved actor
// identity. The services never see session state, only the actor id.
type authedHandler func(w http.ResponseWriter, r *http.Request, actorID string)

// withAuth resolves the acting identity from a Bearer access token or,
// failing that, the session cookie, and rejects the request with 401 when
// neither yields a user id.
func (s *Server) withAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if actorID, ok := s.identity(r); ok {
			next(w, r, actorID)
			return
		}
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: http.StatusText(http.StatusUnauthorized)})
	}
}

// identity extracts the actor id without failing the request; registration
// and login use it to behave differently for logged-in callers.
func (s *Server) identity(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(h, "Bearer "), s.jwtSecret)
		if err == nil && userID != "" {
			return userID, true
		}
		return "", false
	}

	session, err := s.sessions.Get(r, sessionName)
	if err != nil {
		return "", false
	}
	userID, ok := session.Values["user_id"].(string)
	return userID, ok && userID != ""
}

// withLogging wraps a handler with request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		s.logger.Info(r.Context(), "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
