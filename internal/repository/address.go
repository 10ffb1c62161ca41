package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

// AddressRepository flips default flags as independent statements without a
// transaction, mirroring the storefront's accepted weakness: a crash
// mid-sequence can briefly leave zero or two defaults.
type AddressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Address, error)
	GetByID(ctx context.Context, id int64) (*model.Address, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Create(ctx context.Context, address *model.Address) error
	Update(ctx context.Context, address *model.Address) error
	ClearDefaults(ctx context.Context, userID int64, exceptID int64) error
	SetDefault(ctx context.Context, id, userID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	// PromoteLatest marks the user's most recently created address default.
	PromoteLatest(ctx context.Context, userID int64) error
}

type pgAddressRepo struct{ pool *pgxpool.Pool }

func NewAddressRepository(pool *pgxpool.Pool) AddressRepository {
	return &pgAddressRepo{pool: pool}
}

const addressColumns = `id, user_id, label, address_line, city, zip_code, phone, is_default, created_at`

func (r *pgAddressRepo) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses
			  WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Label, &a.AddressLine, &a.City,
			&a.ZipCode, &a.Phone, &a.IsDefault, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *pgAddressRepo) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	a := &model.Address{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id,
	).Scan(
		&a.ID, &a.UserID, &a.Label, &a.AddressLine, &a.City,
		&a.ZipCode, &a.Phone, &a.IsDefault, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

func (r *pgAddressRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM addresses WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count addresses: %w", err)
	}
	return count, nil
}

func (r *pgAddressRepo) Create(ctx context.Context, address *model.Address) error {
	query := `INSERT INTO addresses (user_id, label, address_line, city, zip_code, phone, is_default, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		address.UserID, address.Label, address.AddressLine, address.City,
		address.ZipCode, address.Phone, address.IsDefault,
	).Scan(&address.ID, &address.CreatedAt)
	if err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	return nil
}

func (r *pgAddressRepo) Update(ctx context.Context, address *model.Address) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE addresses SET label=$2, address_line=$3, city=$4, zip_code=$5, phone=$6 WHERE id=$1`,
		address.ID, address.Label, address.AddressLine, address.City, address.ZipCode, address.Phone,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgAddressRepo) ClearDefaults(ctx context.Context, userID int64, exceptID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND id != $2`, userID, exceptID)
	if err != nil {
		return fmt.Errorf("clear default addresses: %w", err)
	}
	return nil
}

func (r *pgAddressRepo) SetDefault(ctx context.Context, id, userID int64) (bool, error) {
	ct, err := r.pool.Exec(ctx,
		`UPDATE addresses SET is_default = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("set default address: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgAddressRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgAddressRepo) PromoteLatest(ctx context.Context, userID int64) error {
	query := `UPDATE addresses SET is_default = TRUE
			  WHERE id = (SELECT id FROM addresses WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1)`
	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("promote latest address: %w", err)
	}
	return nil
}
