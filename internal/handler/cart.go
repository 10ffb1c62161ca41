package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/middleware"
	"github.com/tasnim-mariam/mooncart-api/internal/service"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"cart": cart})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	cart, message, err := h.cartService.AddItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.mapCartError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": message, "cart": cart})
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	cart, message, err := h.cartService.UpdateItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.mapCartError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": message, "cart": cart})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), middleware.GetUserID(c), productID)
	if err != nil {
		h.mapCartError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Item removed from cart", "cart": cart})
}

func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.cartService.Clear(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Cart cleared", "cart": cart})
}

func (h *CartHandler) mapCartError(c *gin.Context, err error) {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		respondErr(c, http.StatusBadRequest, stockErr.Error())
	case errors.Is(err, service.ErrProductUnavailable):
		respondErr(c, http.StatusNotFound, "Product not found or unavailable")
	case errors.Is(err, service.ErrOutOfStock):
		respondErr(c, http.StatusBadRequest, "Product is out of stock")
	case errors.Is(err, service.ErrCartItemNotFound):
		respondErr(c, http.StatusNotFound, "Item not found in cart")
	case errors.Is(err, service.ErrQuantityRequired):
		respondErr(c, http.StatusBadRequest, "quantity or change is required")
	case errors.Is(err, service.ErrInvalidQuantity):
		respondErr(c, http.StatusBadRequest, "Quantity must be at least 1")
	default:
		internalErr(c, err)
	}
}
