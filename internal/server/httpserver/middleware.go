package httpserver

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bookkeeper/internal/server/auth"
)

const bearerPrefix = "Bearer "

// withIdentity reads the Authorization header and, if it carries a valid
// bearer token, attaches the caller's user id to the request context.
// A missing or invalid token is not an error here: the request proceeds
// anonymously and the resolvers decide what requires a session.
func (s *HTTPServer) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, bearerPrefix) {
			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if userID, err := auth.GetUserIDFromToken(token, s.jwtSecret); err == nil {
				r = r.WithContext(auth.WithUserID(r.Context(), userID))
			}
		}

		next.ServeHTTP(w, r)
	})
}
