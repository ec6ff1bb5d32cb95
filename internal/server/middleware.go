package server

import (
	"net/http"
	"strings"

	"github.com/mikecinchan/tcg-deck-editor/pkg/auth"
)

// authenticate requires a valid bearer token and stores the principal in
// the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || s.opts.Verifier == nil {
			s.writeError(w, r, auth.ErrInvalidToken)
			return
		}
		p, err := s.opts.Verifier.Verify(r.Context(), token)
		if err != nil {
			s.logger.Debug("token rejected", "err", err)
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	})
}

// requireRole rejects principals without role. It must run after authenticate.
func (s *Server) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.FromContext(r.Context()).HasRole(role) {
				s.writeError(w, r, auth.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
