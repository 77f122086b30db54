package repo

import (
	"context"
	"database/sql"
	"errors"

	dom "Socialmedia/internal/domain"
	"Socialmedia/internal/utils"
)

// SQLAccountRepo implements AccountRepo over database/sql (SQLite).
type SQLAccountRepo struct {
	db *sql.DB
}

// NewSQLAccountRepo returns a new SQLAccountRepo.
func NewSQLAccountRepo(db *sql.DB) *SQLAccountRepo {
	return &SQLAccountRepo{db: db}
}

func (r *SQLAccountRepo) Create(ctx context.Context, a dom.Account) (dom.Account, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO account (username, password) VALUES (?, ?)`,
		a.Username, a.Password,
	)
	if err != nil {
		if utils.IsSQLiteUniqueViolation(err) {
			return dom.Account{}, ErrUniqueViolation
		}
		return dom.Account{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dom.Account{}, err
	}
	return dom.Account{ID: id, Username: a.Username, Password: a.Password}, nil
}

func (r *SQLAccountRepo) GetByUsername(ctx context.Context, username string) (dom.Account, error) {
	var a dom.Account
	err := r.db.QueryRowContext(ctx,
		`SELECT account_id, username, password FROM account WHERE username = ?`,
		username,
	).Scan(&a.ID, &a.Username, &a.Password)
	return a, sqlErr(err)
}

func (r *SQLAccountRepo) GetByID(ctx context.Context, id int64) (dom.Account, error) {
	var a dom.Account
	err := r.db.QueryRowContext(ctx,
		`SELECT account_id, username, password FROM account WHERE account_id = ?`,
		id,
	).Scan(&a.ID, &a.Username, &a.Password)
	return a, sqlErr(err)
}

func sqlErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}
