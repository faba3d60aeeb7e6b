//go:build integration

package app_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/verikit/internal/app"
	"github.com/ferdiebergado/verikit/internal/config"
	"github.com/ferdiebergado/verikit/internal/pkg/security"
	"github.com/ferdiebergado/verikit/internal/platform/db"
	"github.com/ferdiebergado/verikit/internal/platform/email"
	"github.com/ferdiebergado/verikit/internal/platform/hash"
	"github.com/ferdiebergado/verikit/internal/platform/jwt"
	"github.com/ferdiebergado/verikit/internal/platform/router"
	"github.com/ferdiebergado/verikit/internal/platform/validation"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func setupApp(t *testing.T) *app.App {
	t.Helper()

	if err := env.Load("../../.env.testing"); err != nil {
		t.Fatalf("load env: %v", err)
	}

	cfg, err := config.Load("../../config.json")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	conn, err := db.NewPostgresDB(context.Background(), cfg.DB)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})

	const testKey = "testsecret"
	csrfCfg := cfg.CSRF
	provider := &app.Provider{
		DB:        conn,
		Signer:    jwt.NewGolangJWTSigner(cfg.JWT, testKey),
		Mailer:    email.NewLogMailer(),
		Validator: validation.NewPlaygroundValidator(),
		Hasher:    hash.NewArgon2Hasher(cfg.Argon2, testKey),
		Router:    router.NewGoexpressRouter(),
		CSRFBaker: security.NewCSRFCookieBaker(csrfCfg.CookieName, csrfCfg.TokenLength, csrfCfg.CookieMaxAge.Duration, testKey),
		TxMgr:     db.NewSQLTxManager(conn),
	}

	return app.New(cfg, provider, nil)
}

func TestIntegration_StartAndShutdown(t *testing.T) {
	api := setupApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := api.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("server error: %v", err)
		}
	}()

	time.Sleep(300 * time.Millisecond)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:"+os.Getenv("PORT"), http.NoBody)
	if err != nil {
		t.Fatalf("new http request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Errorf("failed to GET: %v", err)
	} else {
		resp.Body.Close()
	}

	if err := api.Shutdown(); err != nil {
		t.Errorf("failed to shutdown app: %v", err)
	}
}
