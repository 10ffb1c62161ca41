package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/middleware"
	"github.com/tasnim-mariam/mooncart-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondErr(c, http.StatusConflict, "An account with this email already exists")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"message": "Registration successful", "user": user, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondErr(c, http.StatusNotFound, "No account found with this email")
		case errors.Is(err, service.ErrInvalidCredentials):
			respondErr(c, http.StatusUnauthorized, "Incorrect password")
		default:
			internalErr(c, err)
		}
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Login successful", "user": user, "token": token})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.authService.Profile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondErr(c, http.StatusNotFound, "User not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondErr(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrNothingToUpdate):
			respondErr(c, http.StatusBadRequest, "no fields to update")
		default:
			internalErr(c, err)
		}
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// ListUsers is admin-only; ?role= filters by role.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"users": users, "count": len(users)})
}
