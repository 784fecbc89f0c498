package server

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-build-keeper/internal/config"
	"github.com/MKhiriev/go-build-keeper/internal/handler"
	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/workers"
)

// transport is one listener: the HTTP API or the gRPC service.
type transport struct {
	name string
	srv  Server
}

type server struct {
	transports []transport
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewServer creates a listener for every configured address. bg runs next to
// them and is stopped on the same signal.
func NewServer(handlers *handler.Handlers, bg *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	s := &server{workers: bg, logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		s.transports = append(s.transports, transport{
			name: "HTTP",
			srv:  newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		})
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		g, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating gRPC server: %w", err)
		}
		s.transports = append(s.transports, transport{name: "gRPC", srv: g})
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	s.serve(ctx)
}

func (s *server) Shutdown() {
	for _, t := range s.transports {
		t.srv.Shutdown()
	}
}

// serve blocks until ctx is done, then stops the listeners and waits for
// them and the workers to return.
func (s *server) serve(ctx context.Context) {
	var wg sync.WaitGroup
	if s.workers != nil {
		wg.Go(func() { s.workers.Run(ctx) })
	}
	for _, t := range s.transports {
		s.logger.Info().Str("transport", t.name).Msg("launching listener")
		wg.Go(t.srv.RunServer)
	}

	<-ctx.Done()
	s.logger.Info().Msg("stop signal received")

	s.Shutdown()
	wg.Wait()

	s.logger.Info().Msg("server stopped gracefully")
}
