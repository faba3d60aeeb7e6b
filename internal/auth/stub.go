package auth

import (
	"context"
	"errors"

	"github.com/ferdiebergado/verikit/internal/user"
	"github.com/ferdiebergado/verikit/internal/verification"
)

type StubService struct {
	RegisterUserFunc func(ctx context.Context, params RegisterUserParams) (user.User, error)
	LoginUserFunc    func(ctx context.Context, params LoginUserParams) (LoginResult, error)
}

var _ AuthService = (*StubService)(nil)

func (s *StubService) RegisterUser(ctx context.Context, params RegisterUserParams) (user.User, error) {
	if s.RegisterUserFunc == nil {
		return user.User{}, errors.New("RegisterUser not implemented by stub")
	}
	return s.RegisterUserFunc(ctx, params)
}

func (s *StubService) LoginUser(ctx context.Context, params LoginUserParams) (LoginResult, error) {
	if s.LoginUserFunc == nil {
		return LoginResult{}, errors.New("LoginUser not implemented by stub")
	}
	return s.LoginUserFunc(ctx, params)
}

type StubVerificationService struct {
	ConsumeFunc func(ctx context.Context, token string) error
	ReissueFunc func(ctx context.Context, email string) error
}

var _ VerificationService = (*StubVerificationService)(nil)

func (s *StubVerificationService) Consume(ctx context.Context, token string) error {
	if s.ConsumeFunc == nil {
		return errors.New("Consume not implemented by stub")
	}
	return s.ConsumeFunc(ctx, token)
}

func (s *StubVerificationService) Reissue(ctx context.Context, email string) error {
	if s.ReissueFunc == nil {
		return errors.New("Reissue not implemented by stub")
	}
	return s.ReissueFunc(ctx, email)
}

type StubTokenIssuer struct {
	IssueFunc func(ctx context.Context, accountID, email string) (*verification.Token, error)
}

var _ TokenIssuer = (*StubTokenIssuer)(nil)

func (s *StubTokenIssuer) Issue(ctx context.Context, accountID, email string) (*verification.Token, error) {
	if s.IssueFunc == nil {
		return nil, errors.New("Issue not implemented by stub")
	}
	return s.IssueFunc(ctx, accountID, email)
}
