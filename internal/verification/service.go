package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/verikit/internal/config"
	"github.com/ferdiebergado/verikit/internal/platform/db"
	"github.com/ferdiebergado/verikit/internal/platform/email"
	"github.com/ferdiebergado/verikit/internal/user"
)

var (
	ErrTokenInvalid    = errors.New("verification service: invalid token")
	ErrTokenUsed       = errors.New("verification service: token already used")
	ErrTokenExpired    = errors.New("verification service: token expired")
	ErrAccountNotFound = errors.New("verification service: account not found")
	ErrAlreadyVerified = errors.New("verification service: email already verified")
	ErrGenerateToken   = errors.New("verification service: unable to generate a unique token")
)

const (
	// maxGenerateAttempts bounds the regenerate-and-retry loop on a token
	// collision. Hitting the bound signals an entropy-source failure, not
	// bad luck.
	maxGenerateAttempts = 3

	verifyPath    = "/verify-email"
	emailSubject  = "Verify your email"
	emailTemplate = "verification"
)

// Service owns the verification-token lifecycle: issuance, consumption,
// reissue and the provider-attested shortcut. Every state change runs inside
// a database transaction; Issue joins the caller's ambient transaction so a
// token is never persisted without its account.
type Service struct {
	repo      Repository
	users     user.Service
	generator Generator
	mailer    email.Mailer
	txMgr     db.TxManager
	baseURL   string
	ttl       time.Duration
}

func NewService(repo Repository, users user.Service, generator Generator,
	mailer email.Mailer, txMgr db.TxManager, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		generator: generator,
		mailer:    mailer,
		txMgr:     txMgr,
		baseURL:   cfg.Server.URL,
		ttl:       cfg.Email.VerifyTTL.Duration,
	}
}

// Issue creates a pending token for the account and hands the verification
// link to the mailer. It does not open its own transaction: registration and
// reissue both call it with one already on the context. The mail send is
// fire-and-forget; a transport failure is logged and never fails the caller.
func (s *Service) Issue(ctx context.Context, accountID, emailAddr string) (*Token, error) {
	record, err := s.insertWithRetry(ctx, accountID)
	if err != nil {
		return nil, err
	}

	go s.sendVerificationEmail(emailAddr, record.Token)

	return record, nil
}

func (s *Service) insertWithRetry(ctx context.Context, accountID string) (*Token, error) {
	now := time.Now()

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		raw, err := s.generator.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate token: %w", err)
		}

		record := &Token{
			AccountID: accountID,
			Token:     raw,
			ExpiresAt: now.Add(s.ttl),
		}

		err = s.repo.Insert(ctx, record)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, ErrDuplicateToken) {
			return nil, fmt.Errorf("insert token for account %s: %w", accountID, err)
		}

		slog.Warn("verification token collision, regenerating",
			"account_id", accountID, "attempt", attempt)
	}

	return nil, ErrGenerateToken
}

func (s *Service) sendVerificationEmail(to, token string) {
	link := s.baseURL + verifyPath + "?token=" + token

	data := map[string]string{
		"Title":  "Email verification",
		"Header": emailSubject,
		"Link":   link,
	}
	if err := s.mailer.SendHTML([]string{to}, emailSubject, emailTemplate, data); err != nil {
		slog.Error("failed to send verification email", "reason", err)
		return
	}
}

// Consume marks the token used and flips the owning account to verified, in
// one transaction. Replays surface ErrTokenUsed; an expired token never
// succeeds. The conditional update in MarkUsed guarantees a single winner
// when the same token is presented concurrently.
func (s *Service) Consume(ctx context.Context, token string) error {
	return s.txMgr.RunInTx(ctx, func(ctx context.Context) error {
		record, err := s.repo.FindByToken(ctx, token)
		if err != nil {
			if errors.Is(err, ErrTokenNotFound) {
				return ErrTokenInvalid
			}
			return fmt.Errorf("find token: %w", err)
		}

		now := time.Now()
		switch record.StateAt(now) {
		case StateConsumed:
			return ErrTokenUsed
		case StateExpired:
			return ErrTokenExpired
		case StatePending:
		}

		// The account may have been deleted after issuance.
		if _, err := s.users.FindUser(ctx, record.AccountID); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("find account %s: %w", record.AccountID, err)
		}

		if err := s.repo.MarkUsed(ctx, record.ID); err != nil {
			if errors.Is(err, ErrTokenAlreadyUsed) {
				// Lost the race against a concurrent consume.
				return ErrTokenUsed
			}
			return fmt.Errorf("mark token used: %w", err)
		}

		if err := s.users.VerifyUser(ctx, record.AccountID, now); err != nil {
			// The flag never reverts, so a provider attestation that beat
			// this consume leaves nothing left to do.
			if errors.Is(err, user.ErrAlreadyVerified) {
				return nil
			}
			if errors.Is(err, user.ErrNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("verify account %s: %w", record.AccountID, err)
		}

		return nil
	})
}

// Reissue invalidates every live token of the account and issues a fresh
// one, keeping at most one pending token per account at any time. The
// account lookup runs inside the same transaction as the writes so the
// verified check and the retire-then-issue pair see one snapshot.
func (s *Service) Reissue(ctx context.Context, emailAddr string) error {
	return s.txMgr.RunInTx(ctx, func(ctx context.Context) error {
		u, err := s.users.FindUserByEmail(ctx, emailAddr)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("find account by email: %w", err)
		}

		if u.IsEmailVerified {
			return ErrAlreadyVerified
		}

		if err := s.repo.InvalidateUnusedFor(ctx, u.ID, time.Now()); err != nil {
			return fmt.Errorf("invalidate tokens for account %s: %w", u.ID, err)
		}

		if _, err := s.Issue(ctx, u.ID, u.Email); err != nil {
			return fmt.Errorf("issue token for account %s: %w", u.ID, err)
		}
		return nil
	})
}

// AutoVerify flips the account to verified on the word of an upstream
// identity provider. No token row is created or consumed.
func (s *Service) AutoVerify(ctx context.Context, accountID string, at time.Time) error {
	return s.txMgr.RunInTx(ctx, func(ctx context.Context) error {
		err := s.users.VerifyUser(ctx, accountID, at)
		if errors.Is(err, user.ErrAlreadyVerified) {
			return nil
		}
		if errors.Is(err, user.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	})
}
