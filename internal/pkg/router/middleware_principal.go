package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gotrust/internal/pkg/principal"
)

const (
	headerAPIKey         = "X-GoTrust-Key"
	headerOperatorSecret = "X-GoTrust-Operator"
	headerSessionToken   = "X-GoTrust-Session"
	cookieSessionToken   = "gotrust_session"
)

// middlewarePrincipal resolves request credentials into a principal and
// attaches it to the context. Resolution is passive: anything that cannot be
// verified leaves the request anonymous, and endpoints decide for themselves
// whether that is acceptable.
func middlewarePrincipal(resolver principal.Resolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			creds := principal.Credentials{
				APIKey:         r.Header.Get(headerAPIKey),
				OperatorSecret: r.Header.Get(headerOperatorSecret),
				SessionToken:   r.Header.Get(headerSessionToken),
				UserAgent:      r.UserAgent(),
				IP:             r.RemoteAddr,
			}

			if creds.SessionToken == "" {
				if c, err := r.Cookie(cookieSessionToken); err == nil {
					creds.SessionToken = c.Value
				}
			}

			if p := strings.Fields(r.Header.Get("Authorization")); len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
				creds.Bearer = p[1]
			}

			prin, err := resolver.Resolve(r.Context(), creds)
			if err != nil {
				slog.ErrorContext(r.Context(), "failed to resolve request principal", "error", err)
				writeJSON(w, map[string]string{"message": "Internal server error"}, http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(principal.Set(r.Context(), prin)))
		})
	}
}
