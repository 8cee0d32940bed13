package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hexlink/url-shortener/internal/config"
	"github.com/hexlink/url-shortener/internal/generator"
	"github.com/hexlink/url-shortener/internal/handler"
	"github.com/hexlink/url-shortener/internal/service"
	"github.com/hexlink/url-shortener/internal/storage/memory"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config     *config.Config
	urlService *service.URLService
	handler    http.Handler
}

// NewApp wires a fresh in-memory store into the service and HTTP handler.
func NewApp(cfg *config.Config) *App {
	storage := memory.NewStorage()

	urlService := service.NewURLService(storage, generator.New(), cfg.CollisionRetries)

	httpHandler := handler.NewHandler(urlService)

	return &App{
		config:     cfg,
		urlService: urlService,
		handler:    httpHandler.RegisterRoutes(),
	}
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.config.ServerAddress(),
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", server.Addr).Msg("URL Shortener service started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error occurred: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		log.Info().Int("urls", a.urlService.Count()).Msg("Server stopped, discarding in-memory URLs")
		return nil
	})

	return g.Wait()
}
