package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context, unreadOnly bool) ([]model.ContactMessage, error)
	UnreadCount(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (*model.ContactMessage, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type pgContactRepo struct{ pool *pgxpool.Pool }

func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &pgContactRepo{pool: pool}
}

func (r *pgContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	query := `INSERT INTO contact_messages (name, email, subject, message, is_read, created_at)
			  VALUES ($1, $2, $3, $4, FALSE, NOW()) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, msg.Name, msg.Email, msg.Subject, msg.Message).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *pgContactRepo) List(ctx context.Context, unreadOnly bool) ([]model.ContactMessage, error) {
	query := `SELECT id, name, email, subject, message, is_read, created_at
			  FROM contact_messages WHERE (NOT $1 OR NOT is_read)
			  ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *pgContactRepo) UnreadCount(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages WHERE NOT is_read`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return count, nil
}

func (r *pgContactRepo) GetByID(ctx context.Context, id int64) (*model.ContactMessage, error) {
	m := &model.ContactMessage{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, subject, message, is_read, created_at FROM contact_messages WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact message: %w", err)
	}
	return m, nil
}

func (r *pgContactRepo) MarkRead(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `UPDATE contact_messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgContactRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
