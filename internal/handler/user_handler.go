/*
Package handler provides the HTTP handler function for the current-identity lookup.
*/
package handler

import (
	"net/http"

	"msgboard/internal/app/session"
	"msgboard/internal/pkg/errs"
	"msgboard/internal/pkg/logx"
	"msgboard/internal/pkg/resp"
)

// HandleGetCurrentUser returns the identity snapshot of the caller's session.
// The snapshot comes from the session record, not the account record, so it
// reflects the identity as it was at login time. A session that vanished
// between verification and lookup yields 404.
func HandleGetCurrentUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := session.IdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		sess, customErr := deps.Sessions.Resolve(r.Context(), identity.Token)
		if customErr != nil {
			logx.Warn("get_current_user: session vanished after verification", "user_id", identity.UserID)
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"name":     sess.Name,
			"email":    sess.Email,
			"dob":      sess.DOB,
			"username": sess.Username,
			"isGuest":  sess.IsGuest,
		})
	}
}
