package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/service"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), req)
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"message": "Thank you for reaching out. We will get back to you soon.", "contact": msg})
}

// List is admin-only; ?unread=true narrows to unread messages. The unread
// total is always included for the admin badge.
func (h *ContactHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	messages, unread, err := h.contactService.List(c.Request.Context(), unreadOnly)
	if err != nil {
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"messages": messages, "count": len(messages), "unread_count": unread})
}

// GetByID returns a single message and marks it read, so opening a message
// in the admin panel clears its unread badge.
func (h *ContactHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	msg, err := h.contactService.MarkRead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			respondErr(c, http.StatusNotFound, "Message not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"contact": msg})
}

func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	msg, err := h.contactService.MarkRead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			respondErr(c, http.StatusNotFound, "Message not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Message marked as read", "contact": msg})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			respondErr(c, http.StatusNotFound, "Message not found")
			return
		}
		internalErr(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
