package handler

import (
	"msgboard/internal/app/board"
	"msgboard/internal/app/feed"
	"msgboard/internal/app/registry"
	"msgboard/internal/app/session"
	"msgboard/internal/configs"
)

type AppDeps struct {
	Config   *configs.AppConfig
	Users    *registry.Registry
	Sessions *session.Manager
	Board    *board.Board
	Feed     *feed.Hub
}
