package grpc

import (
	"errors"
	"fmt"
	"net"

	"github.com/yungtweek/llm-mockserver/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// HealthServer exposes grpc.health.v1.Health for one mock service so
// orchestrators can check readiness without speaking the mock's HTTP API.
type HealthServer struct {
	addr       string
	service    string
	grpcServer *grpc.Server
	health     *health.Server
}

// NewHealthServer creates a health server for service at the given address.
// Both the named service and the overall server ("") start as NOT_SERVING.
// Example addr: ":50051".
func NewHealthServer(addr, service string) *HealthServer {
	s := &HealthServer{
		addr:       addr,
		service:    service,
		grpcServer: grpc.NewServer(),
		health:     health.NewServer(),
	}

	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	// Handy with grpcurl during local development.
	reflection.Register(s.grpcServer)

	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Run starts listening on the configured address and serves gRPC.
// This call blocks until the server stops or returns an error.
func (s *HealthServer) Run() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		logger.Log.Errorw("[grpc] failed to listen", "addr", s.addr, "err", err)
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(lis)
}

// Serve serves gRPC on an existing listener.
func (s *HealthServer) Serve(lis net.Listener) error {
	logger.Log.Infow("[grpc] starting health server", "addr", lis.Addr().String(), "service", s.service)
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		logger.Log.Errorw("[grpc] server stopped with error", "err", err)
		return err
	}

	logger.Log.Info("[grpc] server stopped gracefully")
	return nil
}

// SetServing marks the service ready once its HTTP listener is up.
func (s *HealthServer) SetServing() {
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

// SetNotServing marks the service as draining.
func (s *HealthServer) SetNotServing() {
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
}

func (s *HealthServer) setStatus(st healthpb.HealthCheckResponse_ServingStatus) {
	logger.Log.Infow("[grpc] health status", "service", s.service, "status", st.String())
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(s.service, st)
}

// GracefulStop flips every status to NOT_SERVING and drains the server.
func (s *HealthServer) GracefulStop() {
	logger.Log.Infow("[grpc] graceful stop", "addr", s.addr)
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

// Stop immediately stops the underlying gRPC server.
func (s *HealthServer) Stop() {
	logger.Log.Infow("[grpc] stop", "addr", s.addr)
	s.grpcServer.Stop()
}
