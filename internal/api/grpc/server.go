package grpc

import (
	"log/slog"
	"time"

	"essential-notes/internal/api/grpc/interceptors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// NewServer создает gRPC сервер со стандартным health сервисом.
// Reflection включается для grpcurl/grpcui.
func NewServer(logger *slog.Logger, healthSrv *health.Server, useReflection bool) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.MaxConcurrentStreams(25),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     30 * time.Minute,
			MaxConnectionAge:      1 * time.Hour,
			MaxConnectionAgeGrace: 5 * time.Second,
			Time:                  10 * time.Minute,
			Timeout:               20 * time.Second,
		}),
		grpc.ChainUnaryInterceptor(interceptors.UnaryLogger(logger)),
		grpc.ChainStreamInterceptor(interceptors.StreamLogger(logger)),
	)

	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	logger.Info("registered grpc health service")

	if useReflection {
		reflection.Register(grpcServer)
		logger.Info("enabled grpc reflection")
	}

	return grpcServer
}
