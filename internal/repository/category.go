package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	ListWithStock(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error
	CountProducts(ctx context.Context, id int64) (int, error)
	ListActiveProducts(ctx context.Context, id int64) ([]model.Product, error)
}

type pgCategoryRepo struct{ pool *pgxpool.Pool }

func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &pgCategoryRepo{pool: pool}
}

func (r *pgCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (name, slug, icon, description, created_at)
			  VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		category.Name, category.Slug, category.Icon, category.Description,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("create category: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *pgCategoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *pgCategoryRepo) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.getBy(ctx, `WHERE slug = $1`, slug)
}

func (r *pgCategoryRepo) getBy(ctx context.Context, where string, arg any) (*model.Category, error) {
	c := &model.Category{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug, icon, description, created_at FROM categories `+where, arg,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *pgCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	query := `SELECT c.id, c.name, c.slug, c.icon, c.description, c.created_at,
			         COUNT(p.id) AS product_count
			  FROM categories c
			  LEFT JOIN products p ON c.id = p.category_id AND p.is_active
			  GROUP BY c.id
			  ORDER BY c.name ASC`
	return r.queryCategories(ctx, query, false)
}

func (r *pgCategoryRepo) ListWithStock(ctx context.Context) ([]model.Category, error) {
	query := `SELECT c.id, c.name, c.slug, c.icon, c.description, c.created_at,
			         COUNT(p.id) AS product_count,
			         COALESCE(SUM(p.stock), 0) AS total_stock
			  FROM categories c
			  LEFT JOIN products p ON c.id = p.category_id AND p.is_active
			  GROUP BY c.id
			  ORDER BY product_count DESC`
	return r.queryCategories(ctx, query, true)
}

func (r *pgCategoryRepo) queryCategories(ctx context.Context, query string, withStock bool) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		dest := []any{&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Description, &c.CreatedAt, &c.ProductCount}
		if withStock {
			dest = append(dest, &c.TotalStock)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *pgCategoryRepo) Update(ctx context.Context, category *model.Category) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE categories SET name=$2, slug=$3, icon=$4, description=$5 WHERE id=$1`,
		category.ID, category.Name, category.Slug, category.Icon, category.Description,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", mapUniqueViolation(err))
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgCategoryRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgCategoryRepo) CountProducts(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count category products: %w", err)
	}
	return count, nil
}

func (r *pgCategoryRepo) ListActiveProducts(ctx context.Context, id int64) ([]model.Product, error) {
	query := `SELECT id, name, slug, description, price, original_price, image,
			         category_id, badge, stock, is_active, created_at, updated_at
			  FROM products WHERE category_id = $1 AND is_active`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list category products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.OriginalPrice, &p.Image,
			&p.CategoryID, &p.Badge, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
