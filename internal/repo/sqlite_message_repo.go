package repo

import (
	"context"
	"database/sql"

	dom "Socialmedia/internal/domain"
)

// SQLMessageRepo implements MessageRepo over database/sql (SQLite).
type SQLMessageRepo struct {
	db *sql.DB
}

func NewSQLMessageRepo(db *sql.DB) *SQLMessageRepo {
	return &SQLMessageRepo{db: db}
}

func (r *SQLMessageRepo) Create(ctx context.Context, m dom.Message) (dom.Message, error) {
	m.PostedAt = postedAt(m)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO message (posted_by, message_text, time_posted_epoch) VALUES (?, ?, ?)`,
		m.AuthorID, m.Text, m.PostedAt,
	)
	if err != nil {
		return dom.Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dom.Message{}, err
	}
	m.ID = id
	return m, nil
}

func (r *SQLMessageRepo) List(ctx context.Context) ([]dom.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message ORDER BY message_id`)
	if err != nil {
		return nil, err
	}
	return scanSQLMessages(rows)
}

func (r *SQLMessageRepo) GetByID(ctx context.Context, id int64) (dom.Message, error) {
	var m dom.Message
	err := r.db.QueryRowContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message WHERE message_id = ?`, id,
	).Scan(&m.ID, &m.AuthorID, &m.Text, &m.PostedAt)
	return m, sqlErr(err)
}

func (r *SQLMessageRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM message WHERE message_id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update rewrites the text of m.ID and re-reads the stored row.
func (r *SQLMessageRepo) Update(ctx context.Context, m dom.Message) (dom.Message, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE message SET message_text = ? WHERE message_id = ?`,
		m.Text, m.ID,
	)
	if err != nil {
		return dom.Message{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dom.Message{}, err
	}
	if n == 0 {
		return dom.Message{}, ErrNoRows
	}
	return r.GetByID(ctx, m.ID)
}

func (r *SQLMessageRepo) ListByAuthor(ctx context.Context, authorID int64) ([]dom.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message WHERE posted_by = ? ORDER BY message_id`, authorID)
	if err != nil {
		return nil, err
	}
	return scanSQLMessages(rows)
}

func scanSQLMessages(rows *sql.Rows) ([]dom.Message, error) {
	defer rows.Close()
	list := make([]dom.Message, 0)
	for rows.Next() {
		var m dom.Message
		if err := rows.Scan(&m.ID, &m.AuthorID, &m.Text, &m.PostedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
