package websocket

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ServerConfig holds WebSocket server configuration
type ServerConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	// AllowedOrigins lists browser origins that may connect. "*" allows any.
	AllowedOrigins []string
	MaxConnections int
}

// DefaultServerConfig returns default WebSocket server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		AllowedOrigins:  []string{"*"},
		MaxConnections:  1000,
	}
}

// Server upgrades /ws requests and hands the connections to the hub.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	maxConns int
	logger   *zap.Logger
}

// NewServer creates a new WebSocket server
func NewServer(hub *Hub, config *ServerConfig, logger *zap.Logger) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}

	return &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     originChecker(config.AllowedOrigins),
		},
		maxConns: config.MaxConnections,
		logger:   logger,
	}
}

// HandleWebSocket handles GET /ws
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.maxConns > 0 && s.hub.ClientCount() >= s.maxConns {
		s.logger.Warn("Connection limit reached",
			zap.Int("clients", s.hub.ClientCount()),
			zap.String("remoteAddr", r.RemoteAddr),
		)
		http.Error(w, "Connection limit exceeded", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		s.logger.Warn("Failed to upgrade connection",
			zap.Error(err),
			zap.String("remoteAddr", r.RemoteAddr),
		)
		return
	}

	// The request context ends when this handler returns; gestures keep
	// its values but not its cancellation.
	client := newClient(context.WithoutCancel(r.Context()), s.hub, conn, s.logger)
	if !client.start() {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	s.logger.Info("New WebSocket connection established",
		zap.String("connectionID", client.id),
		zap.String("remoteAddr", r.RemoteAddr),
	)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	allowAll := false
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		set[o] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		// Same-host requests are always fine.
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}
