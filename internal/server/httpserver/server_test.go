package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookkeeper/internal/server/graph"
)

func newTestResolver(t *testing.T) *graph.Resolver {
	t.Helper()
	return graph.NewResolver(nil, nil, nopLogger{})
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewHTTPServer("127.0.0.1:0", nopLogger{}, newTestResolver(t), "secret")
	if err != nil {
		t.Fatalf("NewHTTPServer error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv, err := NewHTTPServer("127.0.0.1:99999", nopLogger{}, newTestResolver(t), "secret")
	if err != nil {
		t.Fatalf("NewHTTPServer error (constructor should not fail here): %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func TestHealthz(t *testing.T) {
	srv, err := NewHTTPServer("127.0.0.1:0", nopLogger{}, newTestResolver(t), "secret")
	if err != nil {
		t.Fatalf("NewHTTPServer error: %v", err)
	}

	schema, err := graph.NewSchema(newTestResolver(t))
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.routes(schema).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
