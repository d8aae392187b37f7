package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/courtbooking/internal/auth"
	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/repository"
	"github.com/Domenick1991/courtbooking/internal/service/booking"
	"github.com/Domenick1991/courtbooking/internal/timeutil"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/calendar", h.calendar)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.POST("/:id/cancel", h.cancel)
	router.POST("/:id/close", h.close)
	router.GET("/:id/closure", h.closure)
}

type createBookingRequest struct {
	CourtID       int64  `json:"court_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes"`
}

type updateBookingRequest struct {
	CourtID       *int64  `json:"court_id"`
	Date          *string `json:"date"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	Notes         *string `json:"notes"`
}

type closeBookingRequest struct {
	BookingAmountCents  *int64 `json:"booking_amount_cents"`
	CashAmountCents     int64  `json:"cash_amount_cents"`
	TransferAmountCents int64  `json:"transfer_amount_cents"`
	Notes               string `json:"notes"`
}

type bookingResponse struct {
	ID              int64  `json:"id"`
	CourtID         int64  `json:"court_id"`
	CourtName       string `json:"court_name"`
	CourtPriceCents int64  `json:"court_price_cents"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Status          string `json:"status"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email"`
	Origin          string `json:"origin"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		CourtID:         b.CourtID,
		CourtName:       b.CourtName,
		CourtPriceCents: b.CourtPriceCents,
		Date:            b.Date.Format(timeutil.DateLayout),
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          string(b.Status),
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		CustomerEmail:   b.CustomerEmail,
		Origin:          string(b.Origin),
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}

func (h *BookingHandler) list(c *gin.Context) {
	filter, err := bookingFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookings, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) calendar(c *gin.Context) {
	filter, err := bookingFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookings, err := h.service.Calendar(c.Request.Context(), filter.DateFrom, filter.DateTo, filter.CourtID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := booking.CreateBookingInput{
		CourtID:       req.CourtID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	}
	if actor := auth.Actor(c); actor != nil {
		input.CreatedBy = &actor.ID
	}

	b, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := booking.UpdateBookingInput{
		CourtID:       req.CourtID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	}
	if req.Date != nil {
		date, err := timeutil.ParseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.Date = &date
	}

	b, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	b, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) close(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req closeBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := booking.CloseBookingInput{
		BookingID:           id,
		BookingAmountCents:  req.BookingAmountCents,
		CashAmountCents:     req.CashAmountCents,
		TransferAmountCents: req.TransferAmountCents,
		Notes:               req.Notes,
	}
	if actor := auth.Actor(c); actor != nil {
		input.ClosedBy = &actor.ID
	}

	closure, err := h.service.Close(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, closure)
}

func (h *BookingHandler) closure(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	closure, err := h.service.Closure(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, closure)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func bookingFilterFromQuery(c *gin.Context) (repository.BookingFilter, error) {
	var filter repository.BookingFilter

	if v := c.Query("court_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.CourtID = &id
	}
	if v := c.Query("date"); v != "" {
		date, err := timeutil.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}
	if v := c.Query("date_from"); v != "" {
		date, err := timeutil.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &date
	}
	if v := c.Query("date_to"); v != "" {
		date, err := timeutil.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &date
	}
	if v := c.Query("status"); v != "" {
		status := domain.BookingStatus(v)
		filter.Status = &status
	}
	return filter, nil
}
