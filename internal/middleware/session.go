package middleware

import (
	"context"
	"net/http"

	"kiosk-gateway/internal/cart"
)

const sessionCookie = "kiosk_session"

const sessionKey contextKey = "session_id"

// Session attaches a kiosk session id to every request, issuing a new
// cookie when none is present. The cookie is the only thing tying a
// browser to its cart; there is no persistence across cookie loss.
func Session(store *cart.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
				id = c.Value
			} else {
				id, _ = store.NewSession()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session id set by Session, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}
