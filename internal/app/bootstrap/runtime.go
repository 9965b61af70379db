package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/theRoadz/farcaster-neynar/internal/adapters/http"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	components *Components
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	health     *health.Server
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	components, err := BuildComponents(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := httpadapter.RouterOptions{
		Logger:  logger,
		Tracing: components.Tracing.ServerMiddleware(),
	}
	if components.Metrics != nil {
		opts.Observer = components.Metrics
		opts.MetricsHandler = components.Metrics.Handler()
	}
	router := httpadapter.NewRouter(httpadapter.NewHandler(components.Service, logger), opts)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		components.Close()
		return nil, err
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		components: components,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		health:     healthSrv,
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	r.logger.InfoContext(ctx, "starting api",
		"module", "bootstrap",
		"layer", "app",
		"operation", "run_api",
		"http_port", r.cfg.HTTPPort,
		"grpc_port", r.cfg.GRPCPort,
	)
	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", runErr)
	}
	r.health.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.components.Close()
	return runErr
}
