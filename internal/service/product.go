package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNothingToUpdate = errors.New("no fields to update")
)

const productCacheTTL = 60 * time.Second

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// slugify normalizes a name the same way for products and categories:
// lowercase, runs of non-alphanumerics collapsed to single hyphens.
func slugify(name string) string {
	return strings.ToLower(nonAlphanumeric.ReplaceAllString(name, "-"))
}

type ProductService struct {
	productRepo repository.ProductRepository
	redisClient *redis.Client
}

func NewProductService(productRepo repository.ProductRepository, redisClient *redis.Client) *ProductService {
	return &ProductService{productRepo: productRepo, redisClient: redisClient}
}

const defaultStock = 100

func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	stock := defaultStock
	if req.Stock != nil {
		stock = *req.Stock
	}

	product := &model.Product{
		Name:          req.Name,
		Slug:          slugify(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		CategoryID:    req.CategoryID,
		Badge:         req.Badge,
		Stock:         stock,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	cacheKey := fmt.Sprintf("product:%d", id)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var p model.Product
			if json.Unmarshal([]byte(cached), &p) == nil {
				return &p, nil
			}
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(product); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, req dto.ListProductsRequest) ([]model.Product, int, error) {
	return s.productRepo.ListActive(ctx, req.Limit, req.Offset)
}

func (s *ProductService) ListByCategory(ctx context.Context, slug string) ([]model.Product, error) {
	return s.productRepo.ListByCategorySlug(ctx, slug)
}

func (s *ProductService) Search(ctx context.Context, query string) ([]model.Product, error) {
	return s.productRepo.Search(ctx, query)
}

func (s *ProductService) Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*model.Product, error) {
	if req.Name == nil && req.Description == nil && req.Price == nil && req.OriginalPrice == nil &&
		req.Image == nil && req.CategoryID == nil && req.Badge == nil && req.Stock == nil && req.IsActive == nil {
		return nil, ErrNothingToUpdate
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
		product.Slug = slugify(*req.Name)
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = req.OriginalPrice
	}
	if req.Image != nil {
		product.Image = req.Image
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.Badge != nil {
		product.Badge = req.Badge
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.invalidateCache(ctx, id)
	return product, nil
}

// Delete soft-deletes: the row is flagged inactive so order history keeps
// resolving product references.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	s.invalidateCache(ctx, id)
	return nil
}

func (s *ProductService) invalidateCache(ctx context.Context, id int64) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, fmt.Sprintf("product:%d", id))
	}
}
