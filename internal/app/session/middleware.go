package session

import (
	"context"
	"net/http"
	"strings"

	"msgboard/internal/pkg/errs"
	"msgboard/internal/pkg/logx"
	"msgboard/internal/pkg/resp"
)

// Define Context Key for storing the verified identity, preventing key collisions with other packages.
type contextKey string

const (
	// ContextIdentityKey is the key used to store the verified Identity in the request Context.
	ContextIdentityKey contextKey = "session_identity"
)

// Identity is the verified caller identity injected into the request context:
// the owning user id plus the raw token, which handlers use for snapshot
// lookups and revocation.
type Identity struct {
	UserID string
	Token  string
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns the empty string when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// Middleware attempts to extract and verify a bearer token from the request.
// It injects the Identity into the Context upon success. It does NOT interrupt
// the request (no 401 response) on failure or missing token, treating the
// caller as anonymous instead; protected handlers reject anonymous callers.
func (m *Manager) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, customErr := m.Verify(r.Context(), token)
			if customErr != nil {
				// A storage failure is not an authentication verdict and must
				// not be swallowed into an anonymous 401.
				if customErr.Code == errs.ErrStorageFailure {
					resp.RespondError(w, r, customErr)
					return
				}

				// Token exists but is invalid, expired, or revoked.
				// Log and continue as anonymous.
				logx.Warn("Invalid or expired session token provided, treating as anonymous")
				next.ServeHTTP(w, r)
				return
			}

			identity := &Identity{UserID: userID, Token: token}
			ctx := context.WithValue(r.Context(), ContextIdentityKey, identity)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext safely extracts the verified Identity from the request
// Context. In contexts where Middleware is used, a nil return means the caller
// is anonymous.
func IdentityFromContext(r *http.Request) *Identity {
	identity, ok := r.Context().Value(ContextIdentityKey).(*Identity)

	if !ok {
		return nil
	}

	return identity
}
