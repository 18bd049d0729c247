package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/impostor-backend/internal/repository"
)

type resultsProvider interface {
	Summary(ctx context.Context) (*repository.Summary, error)
}

func Start(port string, results resultsProvider) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/stats", statsHandler(results))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
