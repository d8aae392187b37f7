package api

import (
	"net/http"

	"github.com/Domenick1991/courtbooking/internal/service/products"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service products.ProductUseCase
}

func NewProductHandler(service products.ProductUseCase) *ProductHandler {
	return &ProductHandler{service: service}
}

// Register mounts product reads and consumption sales for all staff;
// managing the catalog is admin-only.
func (h *ProductHandler) Register(staff, admin *gin.RouterGroup) {
	staff.GET("/products", h.list)
	staff.GET("/bookings/:id/consumptions", h.listConsumptions)
	staff.POST("/bookings/:id/consumptions", h.addConsumption)
	staff.DELETE("/consumptions/:id", h.deleteConsumption)

	admin.POST("/products", h.create)
	admin.PUT("/products/:id", h.update)
}

func (h *ProductHandler) list(c *gin.Context) {
	// Active catalog by default; retired products on request.
	activeOnly := c.Query("show_all") != "true"
	list, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) create(c *gin.Context) {
	var req products.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req products.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) listConsumptions(c *gin.Context) {
	bookingID, ok := idParam(c)
	if !ok {
		return
	}
	list, err := h.service.ListConsumptions(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type addConsumptionRequest struct {
	ProductID      int64  `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents *int64 `json:"unit_price_cents"`
}

func (h *ProductHandler) addConsumption(c *gin.Context) {
	bookingID, ok := idParam(c)
	if !ok {
		return
	}
	var req addConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consumption, err := h.service.AddConsumption(c.Request.Context(), products.ConsumptionInput{
		BookingID:      bookingID,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		UnitPriceCents: req.UnitPriceCents,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, consumption)
}

func (h *ProductHandler) deleteConsumption(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteConsumption(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
