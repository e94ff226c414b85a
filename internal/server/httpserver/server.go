package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookkeeper/internal/logging"
	"github.com/dmitrijs2005/bookkeeper/internal/server/graph"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// HTTPServer serves the GraphQL endpoint over HTTP.
type HTTPServer struct {
	address   string
	logger    logging.Logger
	resolver  *graph.Resolver
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, r *graph.Resolver, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		resolver:  r,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *HTTPServer) routes(schema graphql.Schema) http.Handler {
	mux := http.NewServeMux()

	gql := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	mux.Handle("/graphql", s.withIdentity(gql))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func (s *HTTPServer) Run(ctx context.Context) error {

	schema, err := graph.NewSchema(s.resolver)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(schema),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "Shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
