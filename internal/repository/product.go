package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	ListActive(ctx context.Context, limit, offset int) ([]model.Product, int, error)
	ListByCategorySlug(ctx context.Context, slug string) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	SoftDelete(ctx context.Context, id int64) error
	DecrementStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) error
}

type pgProductRepo struct{ pool *pgxpool.Pool }

func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &pgProductRepo{pool: pool}
}

const productSelect = `
	SELECT p.id, p.name, p.slug, p.description, p.price, p.original_price,
	       p.image, p.category_id, p.badge, p.stock, p.is_active,
	       c.name, c.slug, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.OriginalPrice,
		&p.Image, &p.CategoryID, &p.Badge, &p.Stock, &p.IsActive,
		&p.CategoryName, &p.CategorySlug, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *pgProductRepo) Create(ctx context.Context, product *model.Product) error {
	query := `INSERT INTO products (name, slug, description, price, original_price, image, category_id, badge, stock, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW(), NOW())
			  RETURNING id, is_active, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		product.Name, product.Slug, product.Description, product.Price, product.OriginalPrice,
		product.Image, product.CategoryID, product.Badge, product.Stock,
	).Scan(&product.ID, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *pgProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	p := &model.Product{}
	err := scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id), p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *pgProductRepo) ListActive(ctx context.Context, limit, offset int) ([]model.Product, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	products, err := r.queryProducts(ctx,
		productSelect+` WHERE p.is_active ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *pgProductRepo) ListByCategorySlug(ctx context.Context, slug string) ([]model.Product, error) {
	return r.queryProducts(ctx,
		productSelect+` WHERE c.slug = $1 AND p.is_active ORDER BY p.created_at DESC`,
		slug,
	)
}

func (r *pgProductRepo) Search(ctx context.Context, query string) ([]model.Product, error) {
	return r.queryProducts(ctx,
		productSelect+` WHERE p.is_active
			AND (p.name ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%' OR c.name ILIKE '%' || $1 || '%')
			ORDER BY p.name ASC`,
		query,
	)
}

func (r *pgProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *pgProductRepo) Update(ctx context.Context, product *model.Product) error {
	query := `UPDATE products
			  SET name=$2, slug=$3, description=$4, price=$5, original_price=$6,
			      image=$7, category_id=$8, badge=$9, stock=$10, is_active=$11, updated_at=NOW()
			  WHERE id=$1 RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Slug, product.Description, product.Price,
		product.OriginalPrice, product.Image, product.CategoryID, product.Badge,
		product.Stock, product.IsActive,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *pgProductRepo) SoftDelete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgProductRepo) DecrementStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) error {
	ct, err := tx.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1 AND stock >= $2`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w for product %d", ErrInsufficientStock, productID)
	}
	return nil
}
