package api

import (
	"net/http"

	"github.com/Domenick1991/courtbooking/internal/service/courts"
	"github.com/gin-gonic/gin"
)

type CourtHandler struct {
	service courts.CourtUseCase
}

func NewCourtHandler(service courts.CourtUseCase) *CourtHandler {
	return &CourtHandler{service: service}
}

// Register mounts the read routes for all staff and the mutating routes on
// the admin-gated group.
func (h *CourtHandler) Register(staff, admin *gin.RouterGroup) {
	staff.GET("/courts", h.list)
	staff.GET("/courts/:id", h.get)
	staff.GET("/config", h.getConfig)

	admin.POST("/courts", h.create)
	admin.PUT("/courts/:id", h.update)
	admin.PATCH("/courts/:id/price", h.updatePrice)
	admin.PUT("/config", h.updateConfig)
}

func (h *CourtHandler) list(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	list, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CourtHandler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	court, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

func (h *CourtHandler) create(c *gin.Context) {
	var req courts.CourtInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	court, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, court)
}

func (h *CourtHandler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req courts.CourtInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	court, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

type updatePriceRequest struct {
	PriceCents int64 `json:"price_cents"`
}

func (h *CourtHandler) updatePrice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	court, err := h.service.UpdatePrice(c.Request.Context(), id, req.PriceCents)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

func (h *CourtHandler) getConfig(c *gin.Context) {
	cfg, err := h.service.GetConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *CourtHandler) updateConfig(c *gin.Context) {
	var req courts.ConfigInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, err := h.service.UpdateConfig(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
