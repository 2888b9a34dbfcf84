package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sketchwire/sketchwire/internal/config"
	"github.com/sketchwire/sketchwire/internal/game"
)

type Server struct {
	cfg     *config.Config
	handler *game.Handler
	reg     *game.Registry
}

// NewServer wires the HTTP surface around an already-constructed game
// handler. Read and write timeouts stay unset so long-lived websocket
// connections are not cut; only the header read and idle timeouts apply.
func NewServer(cfg *config.Config, handler *game.Handler, reg *game.Registry) *http.Server {
	s := &Server{
		cfg:     cfg,
		handler: handler,
		reg:     reg,
	}

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler:           s.RegisterRoutes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
