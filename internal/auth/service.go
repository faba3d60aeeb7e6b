package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/verikit/internal/config"
	"github.com/ferdiebergado/verikit/internal/platform/db"
	"github.com/ferdiebergado/verikit/internal/platform/hash"
	"github.com/ferdiebergado/verikit/internal/platform/jwt"
	"github.com/ferdiebergado/verikit/internal/user"
	"github.com/ferdiebergado/verikit/internal/verification"
)

var (
	ErrUserExists         = errors.New("auth service: user already exists")
	ErrInvalidCredentials = errors.New("auth service: invalid credentials")
	ErrUserNotVerified    = errors.New("auth service: email not verified")
)

// TokenIssuer is the slice of the verification service registration needs.
type TokenIssuer interface {
	Issue(ctx context.Context, accountID, email string) (*verification.Token, error)
}

type Providers struct {
	Hasher hash.Hasher
	Signer jwt.Signer
	TxMgr  db.TxManager
}

type Service struct {
	userSvc user.Service
	issuer  TokenIssuer
	hasher  hash.Hasher
	signer  jwt.Signer
	txMgr   db.TxManager
	cfg     *config.Config
}

func NewService(userSvc user.Service, issuer TokenIssuer, providers *Providers, cfg *config.Config) *Service {
	return &Service{
		userSvc: userSvc,
		issuer:  issuer,
		hasher:  providers.Hasher,
		signer:  providers.Signer,
		txMgr:   providers.TxMgr,
		cfg:     cfg,
	}
}

var _ AuthService = (*Service)(nil)

type RegisterUserParams struct {
	Username string
	Email    string
	Password string
}

func (p RegisterUserParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", p.Username),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

// RegisterUser creates the account and its first verification token in one
// transaction, so neither can exist without the other. The verification
// email rides outside the transaction and cannot fail the registration.
func (s *Service) RegisterUser(ctx context.Context, params RegisterUserParams) (user.User, error) {
	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	var newUser user.User
	err = s.txMgr.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.userSvc.CreateUser(ctx, user.CreateUserParams{
			Username:     params.Username,
			Email:        params.Email,
			PasswordHash: passwordHash,
		})
		if err != nil {
			if errors.Is(err, user.ErrDuplicateUser) {
				return ErrUserExists
			}
			return fmt.Errorf("create user %q: %w", params.Username, err)
		}

		if _, err := s.issuer.Issue(ctx, created.ID, created.Email); err != nil {
			return fmt.Errorf("issue verification token for %q: %w", params.Username, err)
		}

		newUser = created
		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	return newUser, nil
}

type LoginUserParams struct {
	Username string
	Password string
}

func (p LoginUserParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", p.Username),
		slog.String("password", maskChar),
	)
}

type LoginResult struct {
	User         user.User
	AccessToken  string
	RefreshToken string
}

// LoginUser authenticates the credentials, then gates on the verification
// flag and finally signs the session tokens. The credential failure message
// is uniform whether the username or the password was wrong.
func (s *Service) LoginUser(ctx context.Context, params LoginUserParams) (LoginResult, error) {
	var result LoginResult

	u, err := s.userSvc.FindUserByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return result, ErrInvalidCredentials
		}
		return result, fmt.Errorf("find user %q: %w", params.Username, err)
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return result, fmt.Errorf("verify password for user %q: %w", params.Username, err)
	}
	if !ok {
		return result, ErrInvalidCredentials
	}

	if !CanLogin(*u) {
		return result, ErrUserNotVerified
	}

	jwtCfg := s.cfg.JWT
	accessToken, err := s.signer.Sign(u.ID, []string{jwtCfg.Issuer}, jwtCfg.TTL.Duration)
	if err != nil {
		return result, fmt.Errorf("sign access token for user %q: %w", params.Username, err)
	}

	refreshToken, err := s.signer.Sign(u.ID, []string{jwtCfg.Issuer}, jwtCfg.RefreshTTL.Duration)
	if err != nil {
		return result, fmt.Errorf("sign refresh token for user %q: %w", params.Username, err)
	}

	result.User = *u
	result.AccessToken = accessToken
	result.RefreshToken = refreshToken
	return result, nil
}
