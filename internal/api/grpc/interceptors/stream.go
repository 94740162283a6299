package interceptors

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// wrappedServerStream считает сообщения, отправленные в стрим
type wrappedServerStream struct {
	grpc.ServerStream
	sent int
}

// SendMsg переопределяет метод для подсчета исходящих сообщений
func (w *wrappedServerStream) SendMsg(m any) error {
	err := w.ServerStream.SendMsg(m)
	if err == nil {
		w.sent++
	}
	return err
}

// StreamLogger логирует открытие и закрытие стрима (например health Watch)
func StreamLogger(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		logger.Debug("grpc stream opened", "method", info.FullMethod)

		wrapped := &wrappedServerStream{ServerStream: ss}
		err := handler(srv, wrapped)

		attrs := []any{
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"sent", wrapped.sent,
			"duration", time.Since(start),
		}
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Warn("grpc stream failed", append(attrs, "error", err)...)
		} else {
			logger.Debug("grpc stream closed", attrs...)
		}

		return err
	}
}
