package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/verikit/internal/config"
	"github.com/ferdiebergado/verikit/internal/middleware"
	"github.com/ferdiebergado/verikit/internal/pkg/logging"
	"github.com/ferdiebergado/verikit/internal/pkg/message"
	"github.com/ferdiebergado/verikit/internal/platform/db"
)

// Run wires the application from the environment and blocks until the
// context is canceled or the server fails.
func Run(signalCtx context.Context) error {
	slog.Info("Initializing...")

	if os.Getenv("ENV") != "production" {
		if err := env.Load(".env"); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}

	logging.SetupLogger(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"), os.Stdout)

	cfg, err := config.Load("config.json")
	if err != nil {
		return err
	}

	dbConn, err := db.NewPostgresDB(signalCtx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	const envKey = "KEY"
	securityKey, ok := os.LookupEnv(envKey)
	if !ok {
		return fmt.Errorf(message.EnvErrFmt, envKey)
	}

	provider, err := newProvider(cfg, securityKey, dbConn)
	if err != nil {
		return err
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.CheckContentType,
		middleware.CORS,
	}

	application := New(cfg, provider, middlewares)
	if err := application.Start(signalCtx); err != nil {
		return err
	}

	return application.Shutdown()
}
