package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/service"
)

type DeliveryManHandler struct {
	deliveryManService *service.DeliveryManService
}

func NewDeliveryManHandler(deliveryManService *service.DeliveryManService) *DeliveryManHandler {
	return &DeliveryManHandler{deliveryManService: deliveryManService}
}

// List returns all delivery staff; ?active=true narrows to active ones.
func (h *DeliveryManHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	list, err := h.deliveryManService.List(c.Request.Context(), activeOnly)
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"delivery_men": list, "count": len(list)})
}

func (h *DeliveryManHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	dm, err := h.deliveryManService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDeliveryManNotFound) {
			respondErr(c, http.StatusNotFound, "Delivery man not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"delivery_man": dm})
}

func (h *DeliveryManHandler) Create(c *gin.Context) {
	var req dto.CreateDeliveryManRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	dm, err := h.deliveryManService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNIDTaken) {
			respondErr(c, http.StatusConflict, "A delivery man with this NID already exists")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"message": "Delivery man added successfully", "delivery_man": dm})
}

func (h *DeliveryManHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDeliveryManRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	dm, err := h.deliveryManService.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeliveryManNotFound):
			respondErr(c, http.StatusNotFound, "Delivery man not found")
		case errors.Is(err, service.ErrNIDTaken):
			respondErr(c, http.StatusConflict, "A delivery man with this NID already exists")
		default:
			internalErr(c, err)
		}
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Delivery man updated successfully", "delivery_man": dm})
}

func (h *DeliveryManHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deactivated, err := h.deliveryManService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDeliveryManNotFound) {
			respondErr(c, http.StatusNotFound, "Delivery man not found")
			return
		}
		internalErr(c, err)
		return
	}

	message := "Delivery man deleted successfully"
	if deactivated {
		message = "Delivery man has assigned orders and was deactivated instead"
	}
	respond(c, http.StatusOK, gin.H{"message": message, "deactivated": deactivated})
}
