package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/service/reports"
	"github.com/Domenick1991/courtbooking/internal/timeutil"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/reports/daily", h.daily)
	router.GET("/reports/monthly", h.monthly)
	router.GET("/reports/history", h.history)
}

func (h *ReportHandler) daily(c *gin.Context) {
	date := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := timeutil.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date = parsed
	}

	summary, err := h.service.DailySummary(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) monthly(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = parsed
	}
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		month = parsed
	}

	summary, err := h.service.MonthlySummary(c.Request.Context(), year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type historyEntryResponse struct {
	Booking bookingResponse        `json:"booking"`
	Closure *domain.BookingClosure `json:"closure"`
}

func (h *ReportHandler) history(c *gin.Context) {
	filter, err := bookingFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.service.History(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]historyEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, historyEntryResponse{
			Booking: toBookingResponse(&entries[i].Booking),
			Closure: entries[i].Closure,
		})
	}
	c.JSON(http.StatusOK, out)
}
