package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ListenAndServe starts a dedicated HTTP server for Prometheus scrapes on the
// given port. A port of 0 disables the listener. The server shuts down
// gracefully when ctx is cancelled.
func ListenAndServe(ctx context.Context, port int, log zerolog.Logger) {
	if port == 0 {
		log.Info().Msg("metrics server disabled")
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("metrics server shutdown error")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("metrics server error")
	}
}
