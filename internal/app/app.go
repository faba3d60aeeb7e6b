package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ferdiebergado/verikit/internal/auth"
	"github.com/ferdiebergado/verikit/internal/config"
	"github.com/ferdiebergado/verikit/internal/pkg/web"
	"github.com/ferdiebergado/verikit/internal/platform/db"
	"github.com/ferdiebergado/verikit/internal/platform/email"
	"github.com/ferdiebergado/verikit/internal/platform/hash"
	"github.com/ferdiebergado/verikit/internal/platform/jwt"
	"github.com/ferdiebergado/verikit/internal/platform/router"
	"github.com/ferdiebergado/verikit/internal/platform/validation"
	"github.com/ferdiebergado/verikit/internal/user"
	"github.com/ferdiebergado/verikit/internal/verification"
)

type App struct {
	server          *http.Server
	config          *config.Config
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration
	db              *sql.DB
	signer          jwt.Signer
	mailer          email.Mailer
	validator       validation.Validator
	hasher          hash.Hasher
	router          router.Router
	baker           web.Baker
	txManager       db.TxManager
}

func New(cfg *config.Config, provider *Provider, middlewares []func(http.Handler) http.Handler) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	return &App{
		config:          cfg,
		db:              provider.DB,
		txManager:       provider.TxMgr,
		signer:          provider.Signer,
		mailer:          provider.Mailer,
		validator:       provider.Validator,
		hasher:          provider.Hasher,
		router:          provider.Router,
		baker:           provider.CSRFBaker,
		server:          server,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	userRepo := user.NewRepository(a.db)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	verificationRepo := verification.NewRepository(a.db)
	verificationSvc := verification.NewService(verificationRepo, userSvc,
		verification.NewHexGenerator(), a.mailer, a.txManager, a.config)

	authProviders := &auth.Providers{
		Hasher: a.hasher,
		Signer: a.signer,
		TxMgr:  a.txManager,
	}
	authSvc := auth.NewService(userSvc, verificationSvc, authProviders, a.config)
	authHandler := auth.NewHandler(authSvc, verificationSvc, a.signer, a.config, a.baker)

	mountAuthRoutes(a.router, authHandler, a.validator, a.config.Server.MaxBodyBytes)
	mountUserRoutes(a.router, userHandler, a.signer)
}

func (a *App) Start(ctx context.Context) error {
	a.registerMiddlewares()
	a.setupRoutes()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
