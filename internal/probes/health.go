// Package probes exposes process and store health over the standard gRPC
// health checking protocol for orchestrators that probe via gRPC.
//
// The overall service ("") reports liveness and is SERVING for as long as the
// process runs. The "store" service follows the result of periodic store pings.
package probes

import (
	"context"
	"errors"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sbilibin2017/gw-account-auth/internal/logger"
)

// StoreService is the health service name reporting store connectivity.
const StoreService = "store"

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server serves gRPC health checks.
type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	pinger   Pinger
	interval time.Duration
}

// NewServer creates a health server that pings the store every interval.
func NewServer(pinger Pinger, interval time.Duration) *Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(StoreService, healthpb.HealthCheckResponse_UNKNOWN)

	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{
		grpc:     gs,
		health:   hs,
		pinger:   pinger,
		interval: interval,
	}
}

// CheckStore pings the store once and updates the store status.
func (s *Server) CheckStore(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(pingCtx); err != nil {
		logger.Log.Warnw("store ping failed", "err", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus(StoreService, status)
}

// Watch refreshes the store status until ctx is done.
func (s *Server) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.CheckStore(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckStore(ctx)
		}
	}
}

// Serve accepts health checks on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop marks every service NOT_SERVING and stops the gRPC server gracefully.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
