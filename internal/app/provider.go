package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/verikit/internal/config"
	"github.com/ferdiebergado/verikit/internal/pkg/security"
	"github.com/ferdiebergado/verikit/internal/pkg/web"
	"github.com/ferdiebergado/verikit/internal/platform/db"
	"github.com/ferdiebergado/verikit/internal/platform/email"
	"github.com/ferdiebergado/verikit/internal/platform/hash"
	"github.com/ferdiebergado/verikit/internal/platform/jwt"
	"github.com/ferdiebergado/verikit/internal/platform/router"
	"github.com/ferdiebergado/verikit/internal/platform/validation"
)

type Provider struct {
	DB        *sql.DB
	Signer    jwt.Signer
	Mailer    email.Mailer
	Validator validation.Validator
	Hasher    hash.Hasher
	Router    router.Router
	CSRFBaker web.Baker
	TxMgr     db.TxManager
}

func newProvider(cfg *config.Config, securityKey string, dbConn *sql.DB) (*Provider, error) {
	mailer, err := newMailer(cfg.Email)
	if err != nil {
		return nil, err
	}

	csrfCfg := cfg.CSRF

	return &Provider{
		DB:        dbConn,
		Signer:    jwt.NewGolangJWTSigner(cfg.JWT, securityKey),
		Mailer:    mailer,
		Validator: validation.NewPlaygroundValidator(),
		Hasher:    hash.NewArgon2Hasher(cfg.Argon2, securityKey),
		Router:    router.NewGoexpressRouter(),
		CSRFBaker: security.NewCSRFCookieBaker(csrfCfg.CookieName, csrfCfg.TokenLength, csrfCfg.CookieMaxAge.Duration, securityKey),
		TxMgr:     db.NewSQLTxManager(dbConn),
	}, nil
}

// newMailer picks the outbound-email capability once at startup: the SMTP
// sender when the environment is fully configured, the logging stub otherwise.
//
//nolint:ireturn //Callers depend on the Mailer interface.
func newMailer(opts *config.Email) (email.Mailer, error) {
	smtpCfg, err := email.NewSMTPConfig()
	if err != nil {
		slog.Warn("SMTP not fully configured, emails will be logged instead.", "reason", err)
		return email.NewLogMailer(), nil
	}

	mailer, err := email.NewSMTPMailer(smtpCfg, opts)
	if err != nil {
		return nil, fmt.Errorf("new smtp mailer: %w", err)
	}
	return mailer, nil
}
