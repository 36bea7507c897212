package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Path is where the spectator endpoint is mounted by Serve.
const Path = "/ws"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Spectators may watch from any page
	},
}

// Handler upgrades spectator requests and attaches them to a hub.
type Handler struct {
	hub *Hub
}

// NewHandler creates an upgrade handler for hub.
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// ServeHTTP handles websocket requests from the peer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.logger.Warn("Failed to upgrade spectator connection", "remote", r.RemoteAddr, "err", err)
		return
	}

	client := NewClient(h.hub, conn)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// Serve runs the hub and an HTTP server exposing it at Path until ctx is
// cancelled.
func Serve(ctx context.Context, addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(Path, NewHandler(hub))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go hub.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		hub.logger.Info("Spectator feed listening", "addr", addr, "path", Path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("feed: server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("feed: shutdown: %w", err)
	}
	return nil
}
