package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

type fakeProductRepo struct {
	byID   map[int64]*model.Product
	nextID int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[int64]*model.Product{}}
}

func (f *fakeProductRepo) add(p *model.Product) *model.Product {
	f.nextID++
	p.ID = f.nextID
	f.byID[p.ID] = p
	return p
}

func (f *fakeProductRepo) Create(_ context.Context, product *model.Product) error {
	// Mirrors the table default.
	product.IsActive = true
	f.add(product)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) ListActive(_ context.Context, limit, offset int) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range f.byID {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (f *fakeProductRepo) ListByCategorySlug(_ context.Context, slug string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.byID {
		if p.IsActive && p.CategorySlug != nil && *p.CategorySlug == slug {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Search(_ context.Context, query string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.byID {
		if p.IsActive && strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *model.Product) error {
	if _, ok := f.byID[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *product
	f.byID[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id int64) error {
	p, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.IsActive = false
	return nil
}

func (f *fakeProductRepo) DecrementStock(_ context.Context, _ pgx.Tx, productID int64, quantity int) error {
	p, ok := f.byID[productID]
	if !ok || p.Stock < quantity {
		return fmt.Errorf("%w for product %d", repository.ErrInsufficientStock, productID)
	}
	p.Stock -= quantity
	return nil
}

func TestProductService_Create_GeneratesSlug(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil)

	product, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Moon Dust 500g!",
		Price: decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	assert.Equal(t, "moon-dust-500g-", product.Slug)
	assert.True(t, product.IsActive)
}

func TestProductService_Create_DefaultStock(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil)

	product, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Moon Dust",
		Price: decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, product.Stock)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil)

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Update_RenameRegeneratesSlug(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil)

	p := repo.add(&model.Product{Name: "Moon Dust", Slug: "moon-dust", Price: decimal.NewFromInt(120), IsActive: true})

	name := "Star Powder"
	updated, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "star-powder", updated.Slug)
}

func TestProductService_Update_NothingToUpdate(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil)

	_, err := svc.Update(context.Background(), 1, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestProductService_Delete_SoftDeletes(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil)

	p := repo.add(&model.Product{Name: "Moon Dust", Price: decimal.NewFromInt(120), IsActive: true})

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.False(t, repo.byID[p.ID].IsActive)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil)

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "fresh-fruits", slugify("Fresh Fruits"))
	assert.Equal(t, "caf-latte", slugify("Café Latte"))
	assert.Equal(t, "a-b-c", slugify("A  &  B // C"))
}
