package user

import (
	"context"
	"errors"
	"time"
)

type StubService struct {
	CreateUserFunc         func(ctx context.Context, params CreateUserParams) (User, error)
	FindUserFunc           func(ctx context.Context, userID string) (*User, error)
	FindUserByUsernameFunc func(ctx context.Context, username string) (*User, error)
	FindUserByEmailFunc    func(ctx context.Context, email string) (*User, error)
	ListUsersFunc          func(ctx context.Context) ([]User, error)
	VerifyUserFunc         func(ctx context.Context, userID string, at time.Time) error
}

var _ Service = (*StubService)(nil)

func (s *StubService) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	if s.CreateUserFunc == nil {
		return User{}, errors.New("CreateUser not implemented by stub")
	}
	return s.CreateUserFunc(ctx, params)
}

func (s *StubService) FindUser(ctx context.Context, userID string) (*User, error) {
	if s.FindUserFunc == nil {
		return nil, errors.New("FindUser not implemented by stub")
	}
	return s.FindUserFunc(ctx, userID)
}

func (s *StubService) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	if s.FindUserByUsernameFunc == nil {
		return nil, errors.New("FindUserByUsername not implemented by stub")
	}
	return s.FindUserByUsernameFunc(ctx, username)
}

func (s *StubService) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	if s.FindUserByEmailFunc == nil {
		return nil, errors.New("FindUserByEmail not implemented by stub")
	}
	return s.FindUserByEmailFunc(ctx, email)
}

func (s *StubService) ListUsers(ctx context.Context) ([]User, error) {
	if s.ListUsersFunc == nil {
		return nil, errors.New("ListUsers not implemented by stub")
	}
	return s.ListUsersFunc(ctx)
}

func (s *StubService) VerifyUser(ctx context.Context, userID string, at time.Time) error {
	if s.VerifyUserFunc == nil {
		return errors.New("VerifyUser not implemented by stub")
	}
	return s.VerifyUserFunc(ctx, userID, at)
}
