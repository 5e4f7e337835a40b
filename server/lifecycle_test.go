package server

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ray-remotestate/bistro/database/memstore"
	"github.com/ray-remotestate/bistro/handlers"
	"github.com/ray-remotestate/bistro/payment"
	"github.com/ray-remotestate/bistro/utils"
)

func newTestServer() *Server {
	h := handlers.New(
		memstore.New(),
		utils.NewTokenCodec([]byte("test-secret"), time.Hour),
		payment.NewService(nil, "usd"),
		false,
	)
	return SetupRoutes(h, []string{testOrigin})
}

func TestShutdownStopsRun(t *testing.T) {
	srv := newTestServer()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run("127.0.0.1:0") }()

	if err := srv.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Run returned %v, want http.ErrServerClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestShutdownBeforeRun(t *testing.T) {
	srv := newTestServer()

	if err := srv.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := srv.Run("127.0.0.1:0"); !errors.Is(err, http.ErrServerClosed) {
		t.Errorf("Run after Shutdown returned %v, want http.ErrServerClosed", err)
	}
}
