package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

type fakeCategoryRepo struct {
	byID     map[int64]*model.Category
	products map[int64][]model.Product
	nextID   int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[int64]*model.Category{}, products: map[int64][]model.Product{}}
}

func (f *fakeCategoryRepo) add(c *model.Category) *model.Category {
	f.nextID++
	c.ID = f.nextID
	f.byID[c.ID] = c
	return c
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *model.Category) error {
	f.add(category)
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*model.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, c := range f.byID {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) ListWithStock(ctx context.Context) ([]model.Category, error) {
	return f.List(ctx)
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *model.Category) error {
	cp := *category
	f.byID[category.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeCategoryRepo) CountProducts(_ context.Context, id int64) (int, error) {
	return len(f.products[id]), nil
}

func (f *fakeCategoryRepo) ListActiveProducts(_ context.Context, id int64) ([]model.Product, error) {
	return f.products[id], nil
}

func TestCategoryService_Create(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)

	category, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Fresh Fruits"})
	require.NoError(t, err)
	assert.Equal(t, "fresh-fruits", category.Slug)
}

func TestCategoryService_Create_DuplicateSlug(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)

	repo.add(&model.Category{Name: "Fresh Fruits", Slug: "fresh-fruits"})

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Fresh  Fruits"})
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCategoryService_GetByID_IncludesProducts(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)

	c := repo.add(&model.Category{Name: "Fresh Fruits", Slug: "fresh-fruits"})
	repo.products[c.ID] = []model.Product{{Name: "Mango", IsActive: true}}

	category, err := svc.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, category.Products, 1)
	assert.Equal(t, "Mango", category.Products[0].Name)
}

func TestCategoryService_Update_RenameRegeneratesSlug(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)

	c := repo.add(&model.Category{Name: "Fresh Fruits", Slug: "fresh-fruits"})

	name := "Dried Fruits"
	updated, err := svc.Update(context.Background(), c.ID, dto.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "dried-fruits", updated.Slug)
}

func TestCategoryService_Delete_InUse(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)

	c := repo.add(&model.Category{Name: "Fresh Fruits", Slug: "fresh-fruits"})
	repo.products[c.ID] = []model.Product{{Name: "Mango"}, {Name: "Banana"}}

	count, err := svc.Delete(context.Background(), c.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)
	assert.Equal(t, 2, count)
	assert.Contains(t, repo.byID, c.ID)
}

func TestCategoryService_Delete_Empty(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)

	c := repo.add(&model.Category{Name: "Fresh Fruits", Slug: "fresh-fruits"})

	_, err := svc.Delete(context.Background(), c.ID)
	require.NoError(t, err)
	assert.NotContains(t, repo.byID, c.ID)
}
