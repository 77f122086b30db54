package repo

import (
	"context"
	"time"

	dom "Socialmedia/internal/domain"

	"github.com/jackc/pgx/v5"
)

type MessageRepo interface {
	Create(ctx context.Context, m dom.Message) (dom.Message, error)
	List(ctx context.Context) ([]dom.Message, error)
	GetByID(ctx context.Context, id int64) (dom.Message, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, m dom.Message) (dom.Message, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]dom.Message, error)
}

type PGMessageRepo struct {
	db PGXQuerier
}

func NewPGMessageRepo(db PGXQuerier) *PGMessageRepo {
	return &PGMessageRepo{db: db}
}

func (r *PGMessageRepo) Create(ctx context.Context, m dom.Message) (dom.Message, error) {
	query := `
		INSERT INTO message (posted_by, message_text, time_posted_epoch)
		VALUES ($1, $2, $3)
		RETURNING message_id, posted_by, message_text, time_posted_epoch`
	var out dom.Message
	err := r.db.QueryRow(ctx, query, m.AuthorID, m.Text, postedAt(m)).Scan(
		&out.ID, &out.AuthorID, &out.Text, &out.PostedAt,
	)
	return out, err
}

func (r *PGMessageRepo) List(ctx context.Context) ([]dom.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message ORDER BY message_id`)
	if err != nil {
		return nil, err
	}
	return scanPGMessages(rows)
}

func (r *PGMessageRepo) GetByID(ctx context.Context, id int64) (dom.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message WHERE message_id = $1`
	var m dom.Message
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.AuthorID, &m.Text, &m.PostedAt)
	return m, pgErr(err)
}

func (r *PGMessageRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM message WHERE message_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Update rewrites the text of m.ID; the other columns are left as stored.
func (r *PGMessageRepo) Update(ctx context.Context, m dom.Message) (dom.Message, error) {
	query := `
		UPDATE message SET message_text = $2
		WHERE message_id = $1
		RETURNING message_id, posted_by, message_text, time_posted_epoch`
	var out dom.Message
	err := r.db.QueryRow(ctx, query, m.ID, m.Text).Scan(&out.ID, &out.AuthorID, &out.Text, &out.PostedAt)
	return out, pgErr(err)
}

func (r *PGMessageRepo) ListByAuthor(ctx context.Context, authorID int64) ([]dom.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message WHERE posted_by = $1 ORDER BY message_id`, authorID)
	if err != nil {
		return nil, err
	}
	return scanPGMessages(rows)
}

func scanPGMessages(rows pgx.Rows) ([]dom.Message, error) {
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

// postedAt keeps a client supplied timestamp and stamps the current time otherwise.
func postedAt(m dom.Message) int64 {
	if m.PostedAt > 0 {
		return m.PostedAt
	}
	return time.Now().Unix()
}
