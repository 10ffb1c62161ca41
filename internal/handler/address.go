package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/middleware"
	"github.com/tasnim-mariam/mooncart-api/internal/service"
)

type AddressHandler struct {
	addressService *service.AddressService
}

func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.addressService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"addresses": addresses, "count": len(addresses)})
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"message": "Address added successfully", "address": address})
}

func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), middleware.GetUserID(c), id, req)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondErr(c, http.StatusNotFound, "Address not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Address updated successfully", "address": address})
}

func (h *AddressHandler) SetDefault(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.SetDefault(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondErr(c, http.StatusNotFound, "Address not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Default address updated"})
}

func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondErr(c, http.StatusNotFound, "Address not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Address deleted successfully"})
}
