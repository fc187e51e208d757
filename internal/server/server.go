package server

import (
	"context"
	"net"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/KilimcininKorOglu/treelab/internal/config"
	"github.com/KilimcininKorOglu/treelab/internal/logging"
	"github.com/KilimcininKorOglu/treelab/internal/workbench"
)

// Server is the HTTP front end of a workbench.
type Server struct {
	config      config.ServerConfig
	state       *guardedWorkbench
	logger      logging.Logger
	hub         *Hub
	handlers    *Handlers
	router      *Router
	server      *http.Server
	listener    net.Listener
	unsubscribe func()
}

// Option customizes a Server.
type Option func(*serverOptions)

type serverOptions struct {
	version string
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(version string) Option {
	return func(o *serverOptions) { o.version = version }
}

// NewServer creates a server for wb. The server owns wb from here on: all
// further access must go through Apply.
func NewServer(cfg config.ServerConfig, wb *workbench.Workbench, logger logging.Logger, options ...Option) *Server {
	o := serverOptions{version: "dev"}
	for _, opt := range options {
		opt(&o)
	}

	state := &guardedWorkbench{wb: wb}
	hub := NewHub(cfg.FeedBuffer, logger)

	s := &Server{
		config:   cfg,
		state:    state,
		logger:   logger,
		hub:      hub,
		handlers: NewHandlers(state, hub, logger, o.version),
		router:   NewRouter(),
	}

	// Subscribers run inside the mutating call, which holds the state lock.
	s.unsubscribe = wb.Subscribe(func(e workbench.Event) {
		if hub.Count() == 0 {
			return
		}
		hub.Broadcast(feedMessage(wb, e.Op))
	})

	s.setupRoutes()
	s.setupMiddleware()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handlers.HandleChart)
	s.router.GET("/api/v1/health", s.handlers.HandleHealth)

	s.router.GET("/api/v1/tree", s.handlers.HandleGetTree)
	s.router.POST("/api/v1/tree/insert", s.handlers.HandleInsert)
	s.router.POST("/api/v1/tree/delete", s.handlers.HandleDelete)
	s.router.GET("/api/v1/tree/search", s.handlers.HandleSearch)
	s.router.PUT("/api/v1/tree/settings", s.handlers.HandleSettings)
	s.router.POST("/api/v1/tree/reset", s.handlers.HandleReset)

	s.router.GET("/api/v1/tree/feed", s.handlers.HandleFeed)
}

func (s *Server) setupMiddleware() {
	s.router.Use(RequestIDMiddleware())
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(LoggingMiddleware(s.logger))
}

// Handler returns the routed handler with its middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Apply runs fn with exclusive access to the workbench.
func (s *Server) Apply(fn func(wb *workbench.Workbench)) {
	s.state.do(fn)
}

// Start starts listening and serves in the background.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.config.Address)
	}
	s.listener = listener

	s.logger.Info("HTTP server started", "address", listener.Addr().String())

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop disconnects feed clients and gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Close()
	s.unsubscribe()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return errors.Wrap(err, "shutdown HTTP server")
		}
	}

	s.logger.Info("HTTP server stopped")
	return nil
}
