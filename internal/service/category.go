package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category has products")
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*model.Category, error) {
	slug := slugify(req.Name)

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        slug,
		Icon:        req.Icon,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) ListWithStock(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.ListWithStock(ctx)
}

// GetByID returns the category together with its active products.
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	products, err := s.categoryRepo.ListActiveProducts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list category products: %w", err)
	}
	category.Products = products
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req dto.UpdateCategoryRequest) (*model.Category, error) {
	if req.Name == nil && req.Icon == nil && req.Description == nil {
		return nil, ErrNothingToUpdate
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != nil {
		category.Name = *req.Name
		category.Slug = slugify(*req.Name)
	}
	if req.Icon != nil {
		category.Icon = req.Icon
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete refuses to remove a category that still has products, active or
// not; callers must reassign them first.
func (s *CategoryService) Delete(ctx context.Context, id int64) (int, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return 0, ErrCategoryNotFound
	}

	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return count, ErrCategoryInUse
	}
	return 0, s.categoryRepo.Delete(ctx, id)
}
