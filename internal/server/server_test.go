// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/report-desk/internal/config"
	"github.com/MKhiriev/report-desk/internal/handler"
	myGRPC "github.com/MKhiriev/report-desk/internal/handler/grpc"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type workerFunc func(ctx context.Context) error

func (f workerFunc) Run(ctx context.Context) error { return f(ctx) }

func dialBufconn(t *testing.T, lis *bufconn.Listener) healthpb.HealthClient {
	t.Helper()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func TestNewServer_NoServers(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, nil, config.Server{HTTPAddress: ":8080"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestServer_RunAndShutdown(t *testing.T) {
	log := logger.Nop()

	health := myGRPC.NewHandler(nil, log)
	grpcLis := bufconn.Listen(1 << 20)
	gs := newGRPCServer(health, config.Server{}, log)
	gs.listener = grpcLis

	httpLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	hs := newHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "pong")
	}), config.Server{RequestTimeout: time.Second}, log)
	hs.listener = httpLis

	var backgroundStopped atomic.Bool
	background := workers.NewWorkers(workerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		backgroundStopped.Store(true)
		return nil
	}))

	s := &server{httpServer: hs, gRPCServer: gs, background: background, shutdownTimeout: time.Second, logger: log}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.RunServer(ctx) }()

	client := dialBufconn(t, grpcLis)
	require.Eventually(t, func() bool {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: myGRPC.ServiceName})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + httpLis.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.True(t, backgroundStopped.Load())

	status, err := health.Health().Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status.GetStatus())
}

func TestServer_ListenFailureStopsOthers(t *testing.T) {
	log := logger.Nop()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	health := myGRPC.NewHandler(nil, log)
	gs := newGRPCServer(health, config.Server{}, log)
	gs.listener = bufconn.Listen(1 << 20)

	hs := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: busy.Addr().String()}, log)

	s := &server{httpServer: hs, gRPCServer: gs, shutdownTimeout: time.Second, logger: log}

	done := make(chan error, 1)
	go func() { done <- s.RunServer(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "listen")
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
