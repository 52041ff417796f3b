/*
Package handler provides HTTP handler functions for registration, login, and logout.
*/
package handler

import (
	"net/http"

	"msgboard/internal/app/session"
	"msgboard/internal/pkg/logx"
	"msgboard/internal/pkg/req"
	"msgboard/internal/pkg/resp"
)

type RegisterInput struct {
	Name     string `json:"name"`
	DOB      string `json:"dob"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister processes the request to create a new account.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, customErr := deps.Users.Register(r.Context(), input.Name, input.DOB, input.Email, input.Password)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		logx.Info("User registered", "email", user.Email)

		resp.RespondSuccess(w, r, map[string]any{
			"user": map[string]any{
				"id":       user.ID,
				"name":     user.Name,
				"dob":      user.DOB,
				"email":    user.Email,
				"username": user.Username,
			},
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies account credentials and issues a session token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, customErr := deps.Users.Authenticate(r.Context(), input.Email, input.Password)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		sess, customErr := deps.Sessions.Issue(r.Context(), user)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		logx.Info("Login successful", "email", user.Email)

		resp.RespondSuccess(w, r, sessionPayload(sess))
	}
}

// HandleGuestLogin issues a session with a synthesized guest identity, without
// any registration.
func HandleGuestLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, customErr := deps.Sessions.IssueGuest(r.Context())
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		logx.Info("Guest logged in")

		resp.RespondSuccess(w, r, sessionPayload(sess))
	}
}

// HandleLogout revokes the caller's session. It is a no-op (not an error) when
// the token is absent, unknown, or already revoked.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := session.BearerToken(r)

		if customErr := deps.Sessions.Revoke(r.Context(), token); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message": "Logged out",
		})
	}
}

// sessionPayload builds the token-plus-identity-snapshot response shape shared
// by login and guest login.
func sessionPayload(sess *session.Session) map[string]any {
	return map[string]any{
		"token":    sess.Token,
		"username": sess.Username,
		"name":     sess.Name,
		"email":    sess.Email,
		"dob":      sess.DOB,
		"isGuest":  sess.IsGuest,
	}
}
