package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/pricing"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

var (
	ErrProductUnavailable = errors.New("product not found or unavailable")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrCartItemNotFound   = errors.New("item not found in cart")
	ErrQuantityRequired   = errors.New("quantity or change value required")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
)

// InsufficientStockError carries the currently available stock so clients
// can show an actionable message. Adds and updates word it differently.
type InsufficientStockError struct {
	Available int
	Updating  bool
}

func (e *InsufficientStockError) Error() string {
	if e.Updating {
		return fmt.Sprintf("Not enough stock. Available: %d", e.Available)
	}
	return fmt.Sprintf("Not enough stock available. Available: %d", e.Available)
}

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart returns the full cart snapshot with recomputed totals. Every
// mutation below funnels through it so clients always receive the whole
// cart, never a delta.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*dto.CartView, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{Price: item.Price, Quantity: item.Quantity})
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return &dto.CartView{Items: items, Totals: pricing.Calculate(lines)}, nil
}

func (s *CartService) AddItem(ctx context.Context, userID int64, req dto.AddCartItemRequest) (*dto.CartView, string, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("get product: %w", err)
	}
	if product == nil || !product.IsActive {
		return nil, "", ErrProductUnavailable
	}
	if product.Stock <= 0 {
		return nil, "", ErrOutOfStock
	}

	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, "", ErrInvalidQuantity
		}
		quantity = *req.Quantity
	}
	category := "Product"
	if req.Category != nil {
		category = *req.Category
	}

	// Guarded insert first; on conflict fall back to a guarded relative
	// update so concurrent adds for the same (user, product) can never push
	// the stored quantity past stock.
	inserted, err := s.cartRepo.InsertItem(ctx, &model.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Category:  category,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, "", err
	}

	message := "Item added to cart"
	if !inserted {
		merged, err := s.cartRepo.AddQuantity(ctx, userID, req.ProductID, quantity)
		if err != nil {
			return nil, "", err
		}
		if !merged {
			return nil, "", &InsufficientStockError{Available: product.Stock}
		}
		message = "Cart updated successfully"
	}

	view, err := s.GetCart(ctx, userID)
	return view, message, err
}

func (s *CartService) UpdateItem(ctx context.Context, userID int64, req dto.UpdateCartItemRequest) (*dto.CartView, string, error) {
	item, err := s.cartRepo.Get(ctx, userID, req.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("get cart item: %w", err)
	}
	if item == nil {
		return nil, "", ErrCartItemNotFound
	}

	var newQuantity int
	switch {
	case req.Quantity != nil:
		newQuantity = *req.Quantity
	case req.Change != nil:
		newQuantity = item.Quantity + *req.Change
	default:
		return nil, "", ErrQuantityRequired
	}

	if newQuantity <= 0 {
		if err := s.cartRepo.Delete(ctx, userID, req.ProductID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, "", err
		}
		view, err := s.GetCart(ctx, userID)
		return view, "Item removed from cart", err
	}

	ok, err := s.cartRepo.SetQuantity(ctx, userID, req.ProductID, newQuantity)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		product, err := s.productRepo.GetByID(ctx, req.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("get product: %w", err)
		}
		available := 0
		if product != nil {
			available = product.Stock
		}
		return nil, "", &InsufficientStockError{Available: available, Updating: true}
	}

	view, err := s.GetCart(ctx, userID)
	return view, "Cart updated", err
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) (*dto.CartView, error) {
	if err := s.cartRepo.Delete(ctx, userID, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) (*dto.CartView, error) {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}
