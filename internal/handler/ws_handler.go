/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains the HandleFeed function, which is responsible for rate limiting,
session verification, upgrading the HTTP connection to WebSocket, and initiating
the feed subscriber lifecycle.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"msgboard/internal/app/feed"
	"msgboard/internal/pkg/errs"
	"msgboard/internal/pkg/limiter"
	"msgboard/internal/pkg/logx"
	"msgboard/internal/pkg/resp"
)

// HandleFeed creates an HTTP HandlerFunc to process live-feed WebSocket
// connection requests. Browsers cannot set an Authorization header on
// WebSocket upgrades, so the session token is carried in the "token" query
// parameter and verified before upgrading.
func HandleFeed(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("Feed connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		token := r.URL.Query().Get("token")

		userID, customErr := deps.Sessions.Verify(r.Context(), token)
		if customErr != nil {
			logx.Warn("Feed connection rejected: Invalid session token.")
			resp.RespondError(w, r, customErr)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := feed.NewClient(deps.Feed, conn, userID)

		go client.WritePump()

		logx.Info("Feed connection established and subscriber registered", "client_id", userID)

		client.Register()

		client.ReadPump()
	}
}
