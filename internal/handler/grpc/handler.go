// Package grpc exposes the vault's health over the standard gRPC health
// checking protocol for load balancers and orchestrators.
package grpc

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-pass-locker/internal/logger"
	"github.com/MKhiriev/go-pass-locker/internal/service"
)

// ServiceName is the health service name that reports the vault itself.
// The empty name reports the server as a whole; both are driven by the
// same store probe.
const ServiceName = "passlocker.Vault"

// Handler is the root gRPC transport handler.
//
// It answers grpc.health.v1.Health/Check by probing the vault store through
// [service.HealthService]. Watch is not supported.
type Handler struct {
	healthpb.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// logger is used for diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Check reports SERVING while the store answers pings and NOT_SERVING
// otherwise. Unknown service names get codes.NotFound.
func (h *Handler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if name := req.GetService(); name != "" && name != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}

	if err := h.services.HealthService.Check(ctx); err != nil {
		h.logger.Warn().Err(err).Str("func", "*Handler.Check").Msg("vault store is not serving")
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

// Register attaches the health service to registrar.
func (h *Handler) Register(registrar grpclib.ServiceRegistrar) {
	healthpb.RegisterHealthServer(registrar, h)
}
