package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/courtbooking/internal/service/booking"
	"github.com/Domenick1991/courtbooking/internal/service/courts"
	"github.com/Domenick1991/courtbooking/internal/timeutil"
	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated customer-facing API.
type PublicHandler struct {
	bookings booking.BookingUseCase
	courts   courts.CourtUseCase
}

func NewPublicHandler(bookings booking.BookingUseCase, courts courts.CourtUseCase) *PublicHandler {
	return &PublicHandler{bookings: bookings, courts: courts}
}

func (h *PublicHandler) Register(router *gin.RouterGroup) {
	router.GET("/courts", h.listCourts)
	router.GET("/config", h.config)
	router.GET("/slots", h.slots)
	router.POST("/bookings", h.create)
	router.GET("/bookings/search", h.search)
	router.GET("/bookings/verify/:token", h.verify)
	router.POST("/bookings/cancel", h.cancelByToken)
	router.POST("/bookings/:id/cancel", h.cancelByID)
}

type publicCourtResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	PriceCents int64  `json:"price_cents"`
}

func (h *PublicHandler) listCourts(c *gin.Context) {
	active, err := h.courts.ActiveCourts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]publicCourtResponse, 0, len(active))
	for _, court := range active {
		out = append(out, publicCourtResponse{
			ID:         court.ID,
			Name:       court.Name,
			Type:       string(court.Type),
			PriceCents: court.PriceCents,
		})
	}
	c.JSON(http.StatusOK, out)
}

// config exposes the booking grid so customers see the cancellation window
// before committing. Always read fresh, never from the cache.
func (h *PublicHandler) config(c *gin.Context) {
	cfg, err := h.courts.GetConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *PublicHandler) slots(c *gin.Context) {
	date, err := timeutil.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required in YYYY-MM-DD format"})
		return
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if date.Before(today) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot list slots for a past date"})
		return
	}

	var courtID *int64
	if v := c.Query("court_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court_id"})
			return
		}
		courtID = &id
	}

	result, err := h.bookings.AvailableSlots(c.Request.Context(), date, courtID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type publicBookingResponse struct {
	Booking          bookingResponse `json:"booking"`
	CancellationCode string          `json:"cancellation_code"`
}

func (h *PublicHandler) create(c *gin.Context) {
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

	b, token, err := h.bookings.CreatePublic(c.Request.Context(), booking.CreateBookingInput{
		CourtID:       req.CourtID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, publicBookingResponse{
		Booking:          toBookingResponse(b),
		CancellationCode: token.Token,
	})
}

type verifyResponse struct {
	Booking              bookingResponse `json:"booking"`
	CanCancel            bool            `json:"can_cancel"`
	MinCancellationHours int             `json:"min_cancellation_hours"`
	HoursUntilBooking    float64         `json:"hours_until_booking"`
}

func (h *PublicHandler) verify(c *gin.Context) {
	result, err := h.bookings.Verify(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, verifyResponse{
		Booking:              toBookingResponse(result.Booking),
		CanCancel:            result.CanCancel,
		MinCancellationHours: result.MinCancellationHours,
		HoursUntilBooking:    result.HoursUntilBooking,
	})
}

type cancelByTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *PublicHandler) cancelByToken(c *gin.Context) {
	var req cancelByTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.bookings.CancelByToken(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *PublicHandler) cancelByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	b, err := h.bookings.CancelPublicByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

type customerBookingResponse struct {
	Booking              bookingResponse `json:"booking"`
	CanCancel            bool            `json:"can_cancel"`
	MinCancellationHours int             `json:"min_cancellation_hours"`
}

func (h *PublicHandler) search(c *gin.Context) {
	name := c.Query("name")
	phone := c.Query("phone")
	if name == "" && phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name or phone query parameter is required"})
		return
	}

	results, err := h.bookings.SearchCustomerBookings(c.Request.Context(), name, phone)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]customerBookingResponse, 0, len(results))
	for i := range results {
		out = append(out, customerBookingResponse{
			Booking:              toBookingResponse(&results[i].Booking),
			CanCancel:            results[i].CanCancel,
			MinCancellationHours: results[i].MinCancellationHours,
		})
	}
	c.JSON(http.StatusOK, out)
}
