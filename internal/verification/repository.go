package verification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/verikit/internal/platform/db"
	"github.com/google/uuid"
)

var (
	ErrDuplicateToken   = errors.New("verification repository: token already exists")
	ErrTokenNotFound    = errors.New("verification repository: token not found")
	ErrTokenAlreadyUsed = errors.New("verification repository: token already used")
)

// Repository is the durable store of verification tokens, keyed by the
// opaque token string for consumption and by account for reissue.
type Repository interface {
	Insert(ctx context.Context, record *Token) error
	FindByToken(ctx context.Context, token string) (*Token, error)
	MarkUsed(ctx context.Context, id string) error
	InvalidateUnusedFor(ctx context.Context, accountID string, now time.Time) error
}

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

//nolint:ireturn //Either a *sql.Tx or the pooled connection.
func (r *SQLRepository) executor(ctx context.Context) db.Executor {
	return db.ExecutorFromContext(ctx, r.db)
}

const queryTokenInsert = `
INSERT INTO email_verifications (id, account_id, token, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING created_at
`

// Insert persists a new pending token. The record's ID is assigned here.
// A unique violation on the token column surfaces as ErrDuplicateToken so
// the caller can regenerate.
func (r *SQLRepository) Insert(ctx context.Context, record *Token) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	row := r.executor(ctx).QueryRowContext(ctx, queryTokenInsert,
		record.ID, record.AccountID, record.Token, record.ExpiresAt)
	if err := row.Scan(&record.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicateToken
		}
		return fmt.Errorf("insert verification token for account %s: %w", record.AccountID, err)
	}
	return nil
}

const queryTokenFind = `
SELECT id, account_id, token, expires_at, is_used, created_at
FROM email_verifications
WHERE token = $1
LIMIT 1
`

func (r *SQLRepository) FindByToken(ctx context.Context, token string) (*Token, error) {
	row := r.executor(ctx).QueryRowContext(ctx, queryTokenFind, token)
	var t Token
	err := row.Scan(&t.ID, &t.AccountID, &t.Token, &t.ExpiresAt, &t.IsUsed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("find verification token: %w", err)
	}
	return &t, nil
}

const queryTokenMarkUsed = `
UPDATE email_verifications
SET is_used = true
WHERE id = $1 AND is_used = false
`

// MarkUsed flips is_used on an unused token. The conditional update is the
// guard that serializes concurrent consumes: only one caller sees a row
// affected, every other one gets ErrTokenAlreadyUsed.
func (r *SQLRepository) MarkUsed(ctx context.Context, id string) error {
	res, err := r.executor(ctx).ExecContext(ctx, queryTokenMarkUsed, id)
	if err != nil {
		return fmt.Errorf("mark token %s used: %w", id, err)
	}

	numRows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if numRows == 0 {
		return ErrTokenAlreadyUsed
	}

	return nil
}

const queryTokenInvalidate = `
UPDATE email_verifications
SET is_used = true
WHERE account_id = $1 AND is_used = false AND expires_at > $2
`

// InvalidateUnusedFor retires every live token of an account without any
// verification side effect, so a superseded link can never succeed later.
func (r *SQLRepository) InvalidateUnusedFor(ctx context.Context, accountID string, now time.Time) error {
	_, err := r.executor(ctx).ExecContext(ctx, queryTokenInvalidate, accountID, now)
	if err != nil {
		return fmt.Errorf("invalidate unused tokens for account %s: %w", accountID, err)
	}
	return nil
}
