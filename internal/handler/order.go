package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/middleware"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
	"github.com/tasnim-mariam/mooncart-api/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			respondErr(c, http.StatusBadRequest, "Order must contain at least one item")
		case errors.Is(err, repository.ErrInsufficientStock):
			respondErr(c, http.StatusConflict, "One or more items are no longer in stock")
		default:
			internalErr(c, err)
		}
		return
	}

	respond(c, http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// GetByRef resolves :ref as an order number or a numeric order id. Customers
// may only fetch their own orders; admins may fetch any.
func (h *OrderHandler) GetByRef(c *gin.Context) {
	order, err := h.orderService.GetByRef(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondErr(c, http.StatusNotFound, "Order not found")
			return
		}
		internalErr(c, err)
		return
	}

	if middleware.GetUserRole(c) != "admin" && order.UserID != middleware.GetUserID(c) {
		respondErr(c, http.StatusForbidden, "You do not have access to this order")
		return
	}

	respond(c, http.StatusOK, gin.H{"order": order})
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	orders, total, err := h.orderService.ListAll(c.Request.Context(), req)
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"orders": orders, "count": len(orders), "total": total})
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.orderService.ListByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		internalErr(c, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	respond(c, http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("ref"), req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			respondErr(c, http.StatusBadRequest, "Invalid order status")
		case errors.Is(err, service.ErrOrderNotFound):
			respondErr(c, http.StatusNotFound, "Order not found")
		default:
			internalErr(c, err)
		}
		return
	}

	order, err := h.orderService.GetByRef(c.Request.Context(), c.Param("ref"))
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"stats": stats})
}
