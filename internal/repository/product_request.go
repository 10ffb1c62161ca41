package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

// RequestStatusUpdate mirrors the approval workflow: approving clears the
// rejection reason, rejecting clears the delivery assignment.
type RequestStatusUpdate struct {
	Status        string
	AdminNotes    *string
	DeliveryTime  *string
	DeliveryManID *int64
	Rejection     *string
}

type ProductRequestRepository interface {
	Create(ctx context.Context, req *model.ProductRequest) error
	List(ctx context.Context, status string) ([]model.ProductRequest, error)
	PendingCount(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (*model.ProductRequest, error)
	UpdateStatus(ctx context.Context, id int64, upd RequestStatusUpdate) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type pgProductRequestRepo struct{ pool *pgxpool.Pool }

func NewProductRequestRepository(pool *pgxpool.Pool) ProductRequestRepository {
	return &pgProductRequestRepo{pool: pool}
}

const requestColumns = `id, user_id, product_name, category, description, email, status,
	admin_notes, rejection_reason, delivery_time, delivery_man_id, created_at`

func (r *pgProductRequestRepo) Create(ctx context.Context, req *model.ProductRequest) error {
	query := `INSERT INTO product_requests (user_id, product_name, category, description, email, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, 'pending', NOW()) RETURNING id, status, created_at`
	err := r.pool.QueryRow(ctx, query,
		req.UserID, req.ProductName, req.Category, req.Description, req.Email,
	).Scan(&req.ID, &req.Status, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("create product request: %w", err)
	}
	return nil
}

func (r *pgProductRequestRepo) List(ctx context.Context, status string) ([]model.ProductRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM product_requests
			  WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list product requests: %w", err)
	}
	defer rows.Close()

	var requests []model.ProductRequest
	for rows.Next() {
		var pr model.ProductRequest
		if err := rows.Scan(
			&pr.ID, &pr.UserID, &pr.ProductName, &pr.Category, &pr.Description, &pr.Email,
			&pr.Status, &pr.AdminNotes, &pr.RejectionReason, &pr.DeliveryTime, &pr.DeliveryManID,
			&pr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product request: %w", err)
		}
		requests = append(requests, pr)
	}
	return requests, rows.Err()
}

func (r *pgProductRequestRepo) PendingCount(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM product_requests WHERE status = 'pending'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending requests: %w", err)
	}
	return count, nil
}

func (r *pgProductRequestRepo) GetByID(ctx context.Context, id int64) (*model.ProductRequest, error) {
	pr := &model.ProductRequest{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM product_requests WHERE id = $1`, id,
	).Scan(
		&pr.ID, &pr.UserID, &pr.ProductName, &pr.Category, &pr.Description, &pr.Email,
		&pr.Status, &pr.AdminNotes, &pr.RejectionReason, &pr.DeliveryTime, &pr.DeliveryManID,
		&pr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product request: %w", err)
	}
	return pr, nil
}

func (r *pgProductRequestRepo) UpdateStatus(ctx context.Context, id int64, upd RequestStatusUpdate) (bool, error) {
	sets := []string{"status = $1"}
	args := []any{upd.Status}

	if upd.AdminNotes != nil {
		args = append(args, *upd.AdminNotes)
		sets = append(sets, fmt.Sprintf("admin_notes = $%d", len(args)))
	}

	switch upd.Status {
	case model.RequestStatusApproved:
		if upd.DeliveryTime != nil {
			args = append(args, *upd.DeliveryTime)
			sets = append(sets, fmt.Sprintf("delivery_time = $%d", len(args)))
		}
		if upd.DeliveryManID != nil {
			args = append(args, *upd.DeliveryManID)
			sets = append(sets, fmt.Sprintf("delivery_man_id = $%d", len(args)))
		}
		sets = append(sets, "rejection_reason = NULL")
	case model.RequestStatusRejected:
		if upd.Rejection != nil {
			args = append(args, *upd.Rejection)
			sets = append(sets, fmt.Sprintf("rejection_reason = $%d", len(args)))
		}
		sets = append(sets, "delivery_time = NULL", "delivery_man_id = NULL")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE product_requests SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update request status: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgProductRequestRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM product_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product request: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
