package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

type DeliveryManRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.DeliveryMan, error)
	GetByID(ctx context.Context, id int64) (*model.DeliveryMan, error)
	Create(ctx context.Context, dm *model.DeliveryMan) error
	Update(ctx context.Context, dm *model.DeliveryMan) error
	Delete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
	CountAssignedOrders(ctx context.Context, id int64) (int, error)
}

type pgDeliveryManRepo struct{ pool *pgxpool.Pool }

func NewDeliveryManRepository(pool *pgxpool.Pool) DeliveryManRepository {
	return &pgDeliveryManRepo{pool: pool}
}

const deliveryManColumns = `id, name, phone, nid, profile_image, is_active, created_at`

func (r *pgDeliveryManRepo) List(ctx context.Context, activeOnly bool) ([]model.DeliveryMan, error) {
	query := `SELECT ` + deliveryManColumns + ` FROM delivery_men
			  WHERE (NOT $1 OR is_active) ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list delivery men: %w", err)
	}
	defer rows.Close()

	var men []model.DeliveryMan
	for rows.Next() {
		var dm model.DeliveryMan
		if err := rows.Scan(&dm.ID, &dm.Name, &dm.Phone, &dm.NID, &dm.ProfileImage, &dm.IsActive, &dm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery man: %w", err)
		}
		men = append(men, dm)
	}
	return men, rows.Err()
}

func (r *pgDeliveryManRepo) GetByID(ctx context.Context, id int64) (*model.DeliveryMan, error) {
	dm := &model.DeliveryMan{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+deliveryManColumns+` FROM delivery_men WHERE id = $1`, id,
	).Scan(&dm.ID, &dm.Name, &dm.Phone, &dm.NID, &dm.ProfileImage, &dm.IsActive, &dm.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery man: %w", err)
	}
	return dm, nil
}

func (r *pgDeliveryManRepo) Create(ctx context.Context, dm *model.DeliveryMan) error {
	query := `INSERT INTO delivery_men (name, phone, nid, profile_image, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		dm.Name, dm.Phone, dm.NID, dm.ProfileImage, dm.IsActive,
	).Scan(&dm.ID, &dm.CreatedAt)
	if err != nil {
		return fmt.Errorf("create delivery man: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *pgDeliveryManRepo) Update(ctx context.Context, dm *model.DeliveryMan) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE delivery_men SET name=$2, phone=$3, nid=$4, profile_image=$5, is_active=$6 WHERE id=$1`,
		dm.ID, dm.Name, dm.Phone, dm.NID, dm.ProfileImage, dm.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update delivery man: %w", mapUniqueViolation(err))
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgDeliveryManRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM delivery_men WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery man: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgDeliveryManRepo) Deactivate(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `UPDATE delivery_men SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate delivery man: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgDeliveryManRepo) CountAssignedOrders(ctx context.Context, id int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE delivery_man_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count assigned orders: %w", err)
	}
	return count, nil
}
