/*
Package handler provides the HTTP handlers and routing setup for the message board server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers (API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"msgboard/internal/pkg/limiter"
	"msgboard/internal/pkg/logx"
	"msgboard/internal/pkg/resp"
)

const (
	RegisterRate  = 0.2
	RegisterBurst = 3
	FeedRate      = 0.5
	FeedBurst     = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	registerLimiter := limiter.NewIPRateLimiter(rate.Limit(RegisterRate), RegisterBurst)
	feedLimiter := limiter.NewIPRateLimiter(rate.Limit(FeedRate), FeedBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Message Board Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(deps.Sessions.Middleware())

		rateLimitedRegister := registerLimiter.Middleware(HandleRegister(deps))
		api.Post("/register", http.HandlerFunc(rateLimitedRegister.ServeHTTP))
		api.Post("/login", HandleLogin(deps))
		api.Post("/guest", HandleGuestLogin(deps))
		api.Post("/logout", HandleLogout(deps))

		api.Route("/protected", func(protected chi.Router) {
			protected.Get("/user", HandleGetCurrentUser(deps))
			protected.Get("/messages", HandleListMessages(deps))
			protected.Post("/messages", HandlePostMessage(deps))
		})
	})

	r.Get("/ws/feed", HandleFeed(wsUpgrader, feedLimiter, deps))

	return r
}
