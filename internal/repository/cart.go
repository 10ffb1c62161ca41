package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

// CartRepository stores one row per (user, product). The stock guards live
// inside the SQL statements so concurrent mutations can never push a stored
// quantity past the product's current stock.
type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	Get(ctx context.Context, userID, productID int64) (*model.CartItem, error)
	// InsertItem inserts a snapshot row guarded by product stock; it reports
	// false when the row already exists.
	InsertItem(ctx context.Context, item *model.CartItem) (bool, error)
	// AddQuantity applies a relative change guarded by stock; false means
	// the guard rejected the write.
	AddQuantity(ctx context.Context, userID, productID int64, delta int) (bool, error)
	// SetQuantity applies an absolute quantity guarded by stock.
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) (bool, error)
	Delete(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

type pgCartRepo struct{ pool *pgxpool.Pool }

func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &pgCartRepo{pool: pool}
}

func (r *pgCartRepo) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	query := `SELECT ci.user_id, ci.product_id, ci.product_name, ci.price, ci.image,
			         ci.category, ci.quantity, p.stock AS available_stock,
			         ci.created_at, ci.updated_at
			  FROM cart_items ci
			  LEFT JOIN products p ON ci.product_id = p.id
			  WHERE ci.user_id = $1
			  ORDER BY ci.created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(
			&item.UserID, &item.ProductID, &item.ProductName, &item.Price, &item.Image,
			&item.Category, &item.Quantity, &item.AvailableStock,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *pgCartRepo) Get(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	item := &model.CartItem{}
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, product_id, product_name, price, image, category, quantity, created_at, updated_at
		 FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	).Scan(
		&item.UserID, &item.ProductID, &item.ProductName, &item.Price, &item.Image,
		&item.Category, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return item, nil
}

func (r *pgCartRepo) InsertItem(ctx context.Context, item *model.CartItem) (bool, error) {
	query := `INSERT INTO cart_items (user_id, product_id, product_name, price, image, category, quantity, created_at, updated_at)
			  SELECT $1, p.id, p.name, p.price, p.image, $3, $4, NOW(), NOW()
			  FROM products p
			  WHERE p.id = $2 AND p.is_active AND p.stock >= $4
			  ON CONFLICT (user_id, product_id) DO NOTHING`
	ct, err := r.pool.Exec(ctx, query, item.UserID, item.ProductID, item.Category, item.Quantity)
	if err != nil {
		return false, fmt.Errorf("insert cart item: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgCartRepo) AddQuantity(ctx context.Context, userID, productID int64, delta int) (bool, error) {
	query := `UPDATE cart_items SET quantity = quantity + $3, updated_at = NOW()
			  WHERE user_id = $1 AND product_id = $2
			    AND quantity + $3 <= (SELECT stock FROM products WHERE id = $2)`
	ct, err := r.pool.Exec(ctx, query, userID, productID, delta)
	if err != nil {
		return false, fmt.Errorf("add cart quantity: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgCartRepo) SetQuantity(ctx context.Context, userID, productID int64, quantity int) (bool, error) {
	query := `UPDATE cart_items SET quantity = $3, updated_at = NOW()
			  WHERE user_id = $1 AND product_id = $2
			    AND $3 <= (SELECT stock FROM products WHERE id = $2)`
	ct, err := r.pool.Exec(ctx, query, userID, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("set cart quantity: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgCartRepo) Delete(ctx context.Context, userID, productID int64) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgCartRepo) Clear(ctx context.Context, userID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
