package verification

import (
	"context"
	"errors"
	"time"
)

type StubRepository struct {
	InsertFunc              func(ctx context.Context, record *Token) error
	FindByTokenFunc         func(ctx context.Context, token string) (*Token, error)
	MarkUsedFunc            func(ctx context.Context, id string) error
	InvalidateUnusedForFunc func(ctx context.Context, accountID string, now time.Time) error
}

var _ Repository = (*StubRepository)(nil)

func (r *StubRepository) Insert(ctx context.Context, record *Token) error {
	if r.InsertFunc == nil {
		return errors.New("Insert not implemented by stub")
	}
	return r.InsertFunc(ctx, record)
}

func (r *StubRepository) FindByToken(ctx context.Context, token string) (*Token, error) {
	if r.FindByTokenFunc == nil {
		return nil, errors.New("FindByToken not implemented by stub")
	}
	return r.FindByTokenFunc(ctx, token)
}

func (r *StubRepository) MarkUsed(ctx context.Context, id string) error {
	if r.MarkUsedFunc == nil {
		return errors.New("MarkUsed not implemented by stub")
	}
	return r.MarkUsedFunc(ctx, id)
}

func (r *StubRepository) InvalidateUnusedFor(ctx context.Context, accountID string, now time.Time) error {
	if r.InvalidateUnusedForFunc == nil {
		return errors.New("InvalidateUnusedFor not implemented by stub")
	}
	return r.InvalidateUnusedForFunc(ctx, accountID, now)
}

type StubGenerator struct {
	GenerateFunc func() (string, error)
}

var _ Generator = (*StubGenerator)(nil)

func (g *StubGenerator) Generate() (string, error) {
	if g.GenerateFunc == nil {
		return "", errors.New("Generate not implemented by stub")
	}
	return g.GenerateFunc()
}
