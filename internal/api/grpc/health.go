package grpc

import (
	"context"
	"log/slog"

	"essential-notes/internal/store"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName имя сервиса хранилища в health протоколе
const ServiceName = "essential.notes.Store"

// HealthReporter переводит события хранилища в статус health сервиса:
// SERVING после успешной загрузки, NOT_SERVING после неудачной.
type HealthReporter struct {
	srv    *health.Server
	events *store.EventService
	ch     chan store.Event
	logger *slog.Logger
}

// NewHealthReporter подписывается на события сразу, чтобы не пропустить первую загрузку.
// До первой загрузки статус NOT_SERVING.
func NewHealthReporter(events *store.EventService, logger *slog.Logger) *HealthReporter {
	srv := health.NewServer()
	r := &HealthReporter{
		srv:    srv,
		events: events,
		ch:     events.Subscribe(),
		logger: logger,
	}
	r.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return r
}

// Server возвращает health сервер для регистрации
func (r *HealthReporter) Server() *health.Server {
	return r.srv
}

// Run обрабатывает события до отмены ctx
func (r *HealthReporter) Run(ctx context.Context) {
	defer r.events.Unsubscribe(r.ch)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-r.ch:
			if !ok {
				return
			}
			r.apply(ev)
		}
	}
}

// Shutdown переводит все сервисы в NOT_SERVING и больше не принимает обновлений
func (r *HealthReporter) Shutdown() {
	r.srv.Shutdown()
}

func (r *HealthReporter) apply(ev store.Event) {
	switch ev.Type {
	case store.EventLoaded:
		r.set(healthpb.HealthCheckResponse_SERVING)
	case store.EventLoadFailed:
		r.set(healthpb.HealthCheckResponse_NOT_SERVING)
	}
}

func (r *HealthReporter) set(status healthpb.HealthCheckResponse_ServingStatus) {
	r.srv.SetServingStatus("", status)
	r.srv.SetServingStatus(ServiceName, status)
	r.logger.Debug("health status changed", "status", status.String())
}
