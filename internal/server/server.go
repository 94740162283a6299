package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"essential-notes/internal/api/gateway"
	grpcapi "essential-notes/internal/api/grpc"
	"essential-notes/internal/config"
	"essential-notes/internal/repository/backend"
	"essential-notes/internal/store"
	"essential-notes/internal/web"

	"google.golang.org/grpc"
)

// Server представляет приложение: HTTP страница заметок и gRPC health
type Server struct {
	Config *config.Config
	Logger *slog.Logger

	Store  *store.Store
	Events *store.EventService

	// HTTP компоненты
	HTTPServer   *http.Server
	HTTPListener net.Listener
	web          *web.Handler

	// gRPC компоненты; nil, если server.enable_grpc выключен
	GRPCServer   *grpc.Server
	GRPCListener net.Listener
	health       *grpcapi.HealthReporter

	// Контекст фоновых задач, отменяется при shutdown
	Ctx    context.Context
	Cancel context.CancelFunc

	closeRepo func() error
}

// NewServer открывает слушающие сокеты по адресам из конфигурации
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	httpAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortHTTP)
	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	s := &Server{
		Config:       cfg,
		Logger:       logger,
		HTTPListener: httpListener,
	}

	if cfg.Server.EnableGRPC {
		grpcAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortGRPC)
		grpcListener, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			_ = httpListener.Close()
			return nil, fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
		}
		s.GRPCListener = grpcListener
	}

	s.Ctx, s.Cancel = context.WithCancel(context.Background())

	logger.Info("config loaded",
		"http_addr", httpListener.Addr().String(),
		"grpc_enabled", cfg.Server.EnableGRPC,
		"driver", cfg.Remote.Driver,
	)
	return s, nil
}

// Initialize собирает компоненты: Repository → Store → HTTP/gRPC
func (s *Server) Initialize(ctx context.Context) error {
	repo, closeRepo, err := backend.Open(ctx, s.Config.Remote)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", s.Config.Remote.Driver, err)
	}
	s.closeRepo = closeRepo
	s.Logger.Info("initialized note repository", "driver", s.Config.Remote.Driver, "table", s.Config.Remote.Table)

	s.Events = store.NewEventService()
	s.Store = store.New(repo, store.WithEvents(s.Events), store.WithLogger(s.Logger))

	s.web, err = web.NewHandler(s.Store, s.Events, s.Logger)
	if err != nil {
		return fmt.Errorf("init web handler: %w", err)
	}

	srvCfg := s.Config.Server
	s.HTTPServer = &http.Server{
		Handler:           gateway.Wrap(s.web.Routes(), s.Config.Gateway, s.Logger),
		ReadTimeout:       time.Duration(srvCfg.HTTPReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(srvCfg.HTTPWriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(srvCfg.HTTPIdleTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(srvCfg.HTTPReadHeaderTimeout) * time.Second,
	}

	if s.GRPCListener != nil {
		s.health = grpcapi.NewHealthReporter(s.Events, s.Logger)
		s.GRPCServer = grpcapi.NewServer(s.Logger, s.health.Server(), srvCfg.UseReflection)
	}

	return nil
}

// Start запускает серверы и первую загрузку заметок в горутинах.
// Возвращает канал ошибок для отслеживания ошибок серверов.
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 2)

	if s.GRPCServer != nil {
		go s.health.Run(s.Ctx)
		go func() {
			s.Logger.Info("grpc server listening", "addr", s.GRPCListener.Addr().String())
			if err := s.GRPCServer.Serve(s.GRPCListener); err != nil {
				errChan <- fmt.Errorf("gRPC server error: %w", err)
			}
		}()
	}

	go func() {
		s.Logger.Info("http server listening", "addr", s.HTTPListener.Addr().String())
		if err := s.HTTPServer.Serve(s.HTTPListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Ошибка первой загрузки уже записана в сообщение хранилища, страница предложит повтор
	go func() {
		_ = s.Store.Load(context.WithoutCancel(s.Ctx))
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown в пределах server.graceful_shutdown_timeout
func (s *Server) Shutdown() error {
	s.Logger.Info("starting graceful shutdown")

	s.Cancel()
	if s.health != nil {
		s.health.Shutdown()
	}
	s.web.Close()

	shutdownTimeout := time.Duration(s.Config.Server.GracefulShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if s.GRPCServer != nil {
		stopped := make(chan struct{})
		go func() {
			s.GRPCServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
			s.Logger.Info("grpc server stopped gracefully")
		case <-ctx.Done():
			s.Logger.Warn("graceful shutdown timeout, forcing grpc stop")
			s.GRPCServer.Stop()
			errs = append(errs, ctx.Err())
		}
	}

	if s.closeRepo != nil {
		if err := s.closeRepo(); err != nil {
			errs = append(errs, fmt.Errorf("close repository: %w", err))
		}
	}

	return errors.Join(errs...)
}
