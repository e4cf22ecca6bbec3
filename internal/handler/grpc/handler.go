// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc holds the gRPC transport of report-desk. It exposes the
// standard grpc.health.v1 service so that orchestrators can probe the
// process.
package grpc

import (
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("")
// server status.
const ServiceName = "report-desk"

// Handler is the root gRPC transport handler.
//
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Every service starts as NOT_SERVING
// until [Handler.Serving] is called.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// NewServer builds a gRPC server with the handler's services registered.
func (h *Handler) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(h.withLogging))

	srv := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(srv, h.health)

	return srv
}

// Serving marks the process as ready to take requests.
func (h *Handler) Serving() {
	h.health.Resume()
	h.setStatus(healthpb.HealthCheckResponse_SERVING)
	h.logger.Info().Msg("gRPC health: serving")
}

// NotServing marks the process as going away. Later status changes are
// ignored until [Handler.Serving] is called again.
func (h *Handler) NotServing() {
	h.health.Shutdown()
	h.logger.Info().Msg("gRPC health: not serving")
}

// SetStoreReachable reports document store reachability as the status of
// [ServiceName]. The overall server status is left alone.
func (h *Handler) SetStoreReachable(reachable bool) {
	status := healthpb.HealthCheckResponse_SERVING
	if !reachable {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus(ServiceName, status)
}

// Health returns the health service implementation.
func (h *Handler) Health() healthpb.HealthServer {
	return h.health
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
