package interceptors

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryLogger логирует метод, код ответа и время выполнения каждого unary запроса
func UnaryLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		attrs := []any{
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		}
		if err != nil {
			logger.Warn("grpc request failed", append(attrs, "error", status.Convert(err).Message())...)
		} else {
			logger.Info("grpc request", attrs...)
		}

		return resp, err
	}
}
