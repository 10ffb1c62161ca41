package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/middleware"
	"github.com/tasnim-mariam/mooncart-api/internal/service"
)

type ProductRequestHandler struct {
	requestService *service.ProductRequestService
}

func NewProductRequestHandler(requestService *service.ProductRequestService) *ProductRequestHandler {
	return &ProductRequestHandler{requestService: requestService}
}

func (h *ProductRequestHandler) Submit(c *gin.Context) {
	var req dto.SubmitProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	var userID *int64
	if id := middleware.GetUserID(c); id > 0 {
		userID = &id
	}

	pr, err := h.requestService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"message": "Product request submitted successfully", "request": pr})
}

// List is admin-only; ?status= filters by lifecycle state. The pending
// total is always included for the admin badge.
func (h *ProductRequestHandler) List(c *gin.Context) {
	requests, pending, err := h.requestService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequestStatus) {
			respondErr(c, http.StatusBadRequest, "Invalid request status")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"requests": requests, "count": len(requests), "pending_count": pending})
}

func (h *ProductRequestHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	pr, err := h.requestService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			respondErr(c, http.StatusNotFound, "Product request not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"request": pr})
}

func (h *ProductRequestHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	pr, err := h.requestService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequestStatus):
			respondErr(c, http.StatusBadRequest, "Invalid request status")
		case errors.Is(err, service.ErrRequestNotFound):
			respondErr(c, http.StatusNotFound, "Product request not found")
		default:
			internalErr(c, err)
		}
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Request status updated", "request": pr})
}

func (h *ProductRequestHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.requestService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			respondErr(c, http.StatusNotFound, "Product request not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Product request deleted successfully"})
}
