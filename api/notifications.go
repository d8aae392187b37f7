package api

import (
	"net/http"

	"github.com/Domenick1991/courtbooking/internal/auth"
	"github.com/Domenick1991/courtbooking/internal/service/notifications"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service notifications.NotificationUseCase
}

func NewNotificationHandler(service notifications.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) Register(router *gin.RouterGroup) {
	router.GET("/notifications", h.list)
	router.GET("/notifications/unread-count", h.unreadCount)
	router.POST("/notifications/read-all", h.markAllRead)
	router.POST("/notifications/:id/read", h.markRead)
}

func (h *NotificationHandler) list(c *gin.Context) {
	actor := auth.Actor(c)
	list, err := h.service.List(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) unreadCount(c *gin.Context) {
	actor := auth.Actor(c)
	count, err := h.service.UnreadCount(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) markRead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := auth.Actor(c)
	if err := h.service.MarkRead(c.Request.Context(), id, actor.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (h *NotificationHandler) markAllRead(c *gin.Context) {
	actor := auth.Actor(c)
	if err := h.service.MarkAllRead(c.Request.Context(), actor.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
