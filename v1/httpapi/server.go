package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

// Server runs the gin engine on Config.Address.
type Server struct {
	cfg  Config
	http *http.Server
	log  logger.Logger
	done chan struct{}
}

func NewServer(cfg Config, router *gin.Engine, log logger.Logger) *Server {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              cfg.Address,
			Handler:           router,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		log: log,
	}
}

// Start binds the listener synchronously so address errors fail startup,
// then serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server stopped unexpectedly", err, map[string]interface{}{"address": s.cfg.Address})
		}
	}()
	s.log.Info("HTTP server listening", nil, map[string]interface{}{"address": ln.Addr().String()})
	return nil
}

// Stop drains in-flight requests for at most ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	err := s.http.Shutdown(ctx)
	if s.done != nil {
		<-s.done
	}
	s.log.Info("HTTP server stopped", err, nil)
	return err
}
