package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-build-keeper/internal/config"
	"github.com/MKhiriev/go-build-keeper/internal/handler"
	myGRPC "github.com/MKhiriev/go-build-keeper/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/go-build-keeper/internal/handler/http"
	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_NoServers(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_HTTPOnly(t *testing.T) {
	handlers := &handler.Handlers{HTTP: myHTTP.NewHandler(nil, "", logger.Nop())}

	s, err := NewServer(handlers, nil, config.Server{HTTPAddress: "localhost:0"}, logger.Nop())

	require.NoError(t, err)
	srv := s.(*server)
	require.Len(t, srv.transports, 1)
	assert.Equal(t, "HTTP", srv.transports[0].name)
}

type blockingWorker struct {
	stopped chan struct{}
}

func (w *blockingWorker) Run(ctx context.Context) {
	<-ctx.Done()
	close(w.stopped)
}

func TestServe_StopsTransportsAndWorkers(t *testing.T) {
	handlers := &handler.Handlers{
		HTTP: myHTTP.NewHandler(nil, "", logger.Nop()),
		GRPC: myGRPC.NewHandler(nil, logger.Nop()),
	}
	w := &blockingWorker{stopped: make(chan struct{})}
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}

	s, err := NewServer(handlers, workers.NewWorkers(w), cfg, logger.Nop())
	require.NoError(t, err)
	require.Len(t, s.(*server).transports, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.(*server).serve(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	select {
	case <-w.stopped:
	default:
		t.Fatal("worker was not stopped")
	}
}

func TestNewServer_GRPCListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	handlers := &handler.Handlers{GRPC: myGRPC.NewHandler(nil, logger.Nop())}

	_, err = NewServer(handlers, nil, config.Server{GRPCAddress: busy.Addr().String()}, logger.Nop())

	assert.Error(t, err)
}

func TestNewHTTPServer_RequestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	h := newHTTPServer(slow, config.Server{HTTPAddress: ":0", RequestTimeout: 10 * time.Millisecond}, logger.Nop())

	rr := httptest.NewRecorder()
	h.server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestGRPCServer_ServeAndShutdown(t *testing.T) {
	g, err := newGRPCServer(myGRPC.NewHandler(nil, logger.Nop()), config.Server{GRPCAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		g.RunServer()
		close(done)
	}()

	g.Shutdown()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("gRPC server did not stop")
	}
}
