package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hexlink/url-shortener/internal/app"
	"github.com/hexlink/url-shortener/internal/config"
	"github.com/hexlink/url-shortener/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, config.Usage())
		os.Exit(2)
	}

	logger.InitLogger(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.NewApp(cfg)
	if err := application.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Error running application")
	}
}
