package repo

import (
	"context"
	"errors"

	dom "Socialmedia/internal/domain"
	"Socialmedia/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGXQuerier is the part of *pgxpool.Pool the Postgres repos use.
type PGXQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepo provides account persistence.
type AccountRepo interface {
	Create(ctx context.Context, a dom.Account) (dom.Account, error)
	GetByUsername(ctx context.Context, username string) (dom.Account, error)
	GetByID(ctx context.Context, id int64) (dom.Account, error)
}

// PGAccountRepo implements AccountRepo with Postgres.
type PGAccountRepo struct {
	db PGXQuerier
}

// NewPGAccountRepo returns a new PGAccountRepo.
func NewPGAccountRepo(db PGXQuerier) *PGAccountRepo {
	return &PGAccountRepo{db: db}
}

// Create inserts a new account and returns it with its assigned id.
func (r *PGAccountRepo) Create(ctx context.Context, a dom.Account) (dom.Account, error) {
	query := `
		INSERT INTO account (username, password)
		VALUES ($1, $2)
		RETURNING account_id, username, password`
	var out dom.Account
	err := r.db.QueryRow(ctx, query, a.Username, a.Password).Scan(&out.ID, &out.Username, &out.Password)
	if utils.IsPGUniqueViolation(err) {
		return dom.Account{}, ErrUniqueViolation
	}
	return out, err
}

// GetByUsername returns the account by username.
func (r *PGAccountRepo) GetByUsername(ctx context.Context, username string) (dom.Account, error) {
	var a dom.Account
	err := r.db.QueryRow(ctx,
		`SELECT account_id, username, password FROM account WHERE username = $1`,
		username,
	).Scan(&a.ID, &a.Username, &a.Password)
	return a, pgErr(err)
}

// GetByID returns the account by id.
func (r *PGAccountRepo) GetByID(ctx context.Context, id int64) (dom.Account, error) {
	var a dom.Account
	err := r.db.QueryRow(ctx,
		`SELECT account_id, username, password FROM account WHERE account_id = $1`,
		id,
	).Scan(&a.ID, &a.Username, &a.Password)
	return a, pgErr(err)
}

func pgErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}
	return err
}
