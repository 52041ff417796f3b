/*
Package handler provides HTTP handler functions for reading and posting board messages.
*/
package handler

import (
	"net/http"

	"msgboard/internal/app/board"
	"msgboard/internal/app/session"
	"msgboard/internal/pkg/errs"
	"msgboard/internal/pkg/logx"
	"msgboard/internal/pkg/req"
	"msgboard/internal/pkg/resp"
)

// HandleListMessages returns the full persisted message history in stored order.
func HandleListMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := session.IdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		messages, customErr := deps.Board.List(r.Context())
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if messages == nil {
			messages = []board.Message{}
		}

		resp.RespondSuccess(w, r, messages)
	}
}

type PostMessageInput struct {
	Text string `json:"text"`
	IsAI bool   `json:"isAI"`
}

// HandlePostMessage appends a new message attributed to the caller's session
// snapshot and publishes it to the live feed. If the session vanished between
// verification and posting, the message is still accepted and attributed to
// the unknown author, matching the original server's behavior.
func HandlePostMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := session.IdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PostMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		author := ""
		if sess, customErr := deps.Sessions.Resolve(r.Context(), identity.Token); customErr == nil {
			author = sess.Username
		} else {
			logx.Warn("post_message: session vanished after verification", "user_id", identity.UserID)
		}

		message, customErr := deps.Board.Post(r.Context(), author, input.Text, input.IsAI)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if deps.Feed != nil {
			deps.Feed.Publish(*message)
		}

		resp.RespondSuccess(w, r, message)
	}
}
