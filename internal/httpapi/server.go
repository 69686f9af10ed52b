package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/yungtweek/llm-mockserver/internal/logger"
)

// Server wraps an http.Server and its listen address.
type Server struct {
	addr       string
	httpServer *http.Server
}

// NewHTTPServer creates a server for h at the given address.
// Example addr: "localhost:8000".
func NewHTTPServer(addr string, h http.Handler) *Server {
	return &Server{
		addr: addr,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Serve serves HTTP on an existing listener. A shutdown is not an error.
func (s *Server) Serve(lis net.Listener) error {
	logger.Log.Infow("[http] starting server", "addr", lis.Addr().String())
	if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Errorw("[http] server stopped with error", "err", err)
		return err
	}

	logger.Log.Info("[http] server stopped gracefully")
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Infow("[http] graceful stop", "addr", s.addr)
	return s.httpServer.Shutdown(ctx)
}
