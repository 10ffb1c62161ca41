package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			respondErr(c, http.StatusConflict, "A category with this name already exists")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"message": "Category created successfully", "category": category})
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// ListWithStock backs the admin inventory view: categories ordered by
// product count, each with its summed stock.
func (h *CategoryHandler) ListWithStock(c *gin.Context) {
	categories, err := h.categoryService.ListWithStock(c.Request.Context())
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondErr(c, http.StatusNotFound, "Category not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"category": category})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondErr(c, http.StatusNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryExists):
			respondErr(c, http.StatusConflict, "A category with this name already exists")
		case errors.Is(err, service.ErrNothingToUpdate):
			respondErr(c, http.StatusBadRequest, "no fields to update")
		default:
			internalErr(c, err)
		}
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Category updated successfully", "category": category})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	count, err := h.categoryService.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondErr(c, http.StatusNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryInUse):
			respondErr(c, http.StatusConflict,
				fmt.Sprintf("Cannot delete category: %d products still belong to it", count))
		default:
			internalErr(c, err)
		}
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
