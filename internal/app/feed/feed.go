/*
Package feed contains the logic for pushing newly posted board messages to
connected WebSocket subscribers in real time.

This file defines the Hub struct, the central event loop that tracks
subscribers and fans each published message out to them. The feed is purely
advisory: the HTTP message endpoints remain the source of truth, and a client
that misses feed events simply re-fetches the history.
*/
package feed

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"msgboard/internal/app/board"
	"msgboard/internal/pkg/logx"
)

const broadcastChannelBuffer = 256

// Hub struct is responsible for coordinating all active feed subscribers.
type Hub struct {
	// clients holds every currently connected subscriber.
	clients map[*Client]struct{}

	// broadcast is a buffered channel of encoded messages waiting to be fanned out.
	broadcast chan []byte

	// register is the channel for subscribers joining the feed.
	register chan *Client

	// unregister is the channel for subscribers leaving the feed.
	unregister chan *Client

	// stopChan signals the Run loop to terminate.
	stopChan chan struct{}

	// wg is used to wait for the Run loop to finish during shutdown.
	wg sync.WaitGroup

	// structured logger with Hub context.
	logger zerolog.Logger
}

// NewHub constructs a Hub and starts its Run loop.
func NewHub() *Hub {
	hubLogger := logx.Logger().With().Str("component", "FeedHub").Logger()

	h := &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastChannelBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopChan:   make(chan struct{}),
		logger:     hubLogger,
	}

	h.wg.Add(1)

	go h.run()

	return h
}

// run is the main event loop for the Hub. It handles subscriber registration,
// deregistration, and message fan-out. Subscribers whose send queue is full
// are dropped rather than allowed to block the loop.
func (h *Hub) run() {
	defer h.wg.Done()

	h.logger.Info().Msg("Feed hub loop started.")

	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Info().
				Str("client_id", client.userID).
				Int("total_subscribers", len(h.clients)).
				Msg("Subscriber joined feed.")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info().
					Str("client_id", client.userID).
					Int("total_subscribers", len(h.clients)).
					Msg("Subscriber left feed.")
			}

		case raw := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- raw:
				default:
					delete(h.clients, client)
					close(client.send)
					h.logger.Warn().
						Str("client_id", client.userID).
						Msg("Subscriber send queue full. Dropping subscriber.")
				}
			}

		case <-h.stopChan:
			for client := range h.clients {
				close(client.send)
			}
			h.clients = nil

			h.logger.Info().Msg("Feed hub loop stopped.")
			return
		}
	}
}

// Publish queues a newly posted message for fan-out to all subscribers.
// It never blocks the caller; if the broadcast queue is full the event is
// dropped and clients recover by re-fetching the history.
func (h *Hub) Publish(msg board.Message) {
	raw, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode message for feed broadcast.")
		return
	}

	select {
	case h.broadcast <- raw:
	case <-h.stopChan:
	default:
		h.logger.Warn().Msg("Feed broadcast channel full. Dropping event.")
	}
}

// Shutdown gracefully stops the Hub's Run loop and disconnects all subscribers.
func (h *Hub) Shutdown() {
	h.logger.Info().Msg("Shutting down feed hub...")

	select {
	case <-h.stopChan:
	default:
		close(h.stopChan)
	}

	h.wg.Wait()

	h.logger.Info().Msg("Feed hub shutdown complete.")
}
