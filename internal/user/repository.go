package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/verikit/internal/platform/db"
)

var (
	ErrNotFound        = errors.New("user repository: user not found")
	ErrDuplicateUser   = errors.New("user repository: username or email already exists")
	ErrAlreadyVerified = errors.New("user repository: email already verified")
)

// Repository is the interface for account persistence.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (User, error)
	Find(ctx context.Context, userID string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Verify(ctx context.Context, userID string, at time.Time) error
}

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

// executor returns the ambient transaction when one is open.
//
//nolint:ireturn //Either a *sql.Tx or the pooled connection.
func (r *SQLRepository) executor(ctx context.Context) db.Executor {
	return db.ExecutorFromContext(ctx, r.db)
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

const queryUserCreate = `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, username, email, is_email_verified, created_at, updated_at
`

func (r *SQLRepository) Create(ctx context.Context, params CreateUserParams) (User, error) {
	row := r.executor(ctx).QueryRowContext(ctx, queryUserCreate, params.Username, params.Email, params.PasswordHash)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return u, ErrDuplicateUser
		}
		return u, fmt.Errorf("create user %q: %w", params.Username, err)
	}
	return u, nil
}

const queryUserSelect = `
SELECT id, username, email, password_hash, is_email_verified, email_verified_at, created_at, updated_at
FROM users
`

func (r *SQLRepository) scanOne(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.IsEmailVerified, &u.EmailVerifiedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user row: %w", err)
	}
	return &u, nil
}

func (r *SQLRepository) Find(ctx context.Context, userID string) (*User, error) {
	const query = queryUserSelect + "WHERE id = $1 LIMIT 1"
	return r.scanOne(r.executor(ctx).QueryRowContext(ctx, query, userID))
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = queryUserSelect + "WHERE username = $1 LIMIT 1"
	return r.scanOne(r.executor(ctx).QueryRowContext(ctx, query, username))
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = queryUserSelect + "WHERE email = $1 LIMIT 1"
	return r.scanOne(r.executor(ctx).QueryRowContext(ctx, query, email))
}

const queryUserList = `
SELECT id, username, email, is_email_verified, email_verified_at, created_at, updated_at
FROM users
ORDER BY created_at
`

func (r *SQLRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.executor(ctx).QueryContext(ctx, queryUserList)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	//nolint:prealloc //Cannot identify the length of the rows without running another query.
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.IsEmailVerified,
			&u.EmailVerifiedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over user rows: %w", err)
	}

	return users, nil
}

const queryUserVerify = `
UPDATE users
SET is_email_verified = true, email_verified_at = $2, updated_at = NOW()
WHERE id = $1 AND is_email_verified = false
`

// Verify flips the verification flag. The conditional update guarantees the
// flag and timestamp are written at most once per account.
func (r *SQLRepository) Verify(ctx context.Context, userID string, at time.Time) error {
	res, err := r.executor(ctx).ExecContext(ctx, queryUserVerify, userID, at)
	if err != nil {
		return fmt.Errorf("verify user with id %s: %w", userID, err)
	}

	numRows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if numRows == 0 {
		if _, err := r.Find(ctx, userID); err != nil {
			return err
		}
		return ErrAlreadyVerified
	}

	return nil
}
