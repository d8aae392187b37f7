package domain

import (
	"strings"
	"time"

	"github.com/Domenick1991/courtbooking/internal/timeutil"
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusAvailable BookingStatus = "available"
	BookingStatusReserved  BookingStatus = "reserved"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type BookingOrigin string

const (
	BookingOriginAdmin  BookingOrigin = "admin"
	BookingOriginPublic BookingOrigin = "public"
)

// Booking reserves a court for a [StartTime, EndTime) interval on Date.
// Times are "HH:MM" wall-clock strings. Bookings are never deleted, only
// status-transitioned, so the table doubles as the audit trail.
type Booking struct {
	ID              int64         `json:"id"`
	CourtID         int64         `json:"court_id"`
	CourtName       string        `json:"court_name"`
	CourtPriceCents int64         `json:"court_price_cents"`
	Date            time.Time     `json:"date"`
	StartTime       string        `json:"start_time"`
	EndTime         string        `json:"end_time"`
	Status          BookingStatus `json:"status"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerEmail   string        `json:"customer_email"`
	Origin          BookingOrigin `json:"origin"`
	Notes           string        `json:"notes"`
	CreatedBy       *int64        `json:"created_by"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusAvailable || b.Status == BookingStatusReserved
}

func (b *Booking) CanBeClosed() bool {
	return b.Status == BookingStatusReserved
}

func (b *Booking) DurationMinutes() int {
	start, err := timeutil.ParseClock(b.StartTime)
	if err != nil {
		return 0
	}
	end, err := timeutil.ParseClock(b.EndTime)
	if err != nil {
		return 0
	}
	return end - start
}

// StartsAt combines Date and StartTime into a local wall-clock instant.
func (b *Booking) StartsAt() time.Time {
	t, err := timeutil.Combine(b.Date, b.StartTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// BookingInterval is the projection the slot generator works with: one row
// per non-cancelled booking, fetched in a single query for the whole date.
type BookingInterval struct {
	CourtID   int64
	StartTime string
	EndTime   string
}

// BookingClosure is the one-to-one settlement record of a completed booking.
type BookingClosure struct {
	ID                      int64     `json:"id"`
	BookingID               int64     `json:"booking_id"`
	BookingAmountCents      int64     `json:"booking_amount_cents"`
	CashAmountCents         int64     `json:"cash_amount_cents"`
	TransferAmountCents     int64     `json:"transfer_amount_cents"`
	ConsumptionsAmountCents int64     `json:"consumptions_amount_cents"`
	TotalAmountCents        int64     `json:"total_amount_cents"`
	Notes                   string    `json:"notes"`
	ClosedBy                *int64    `json:"closed_by"`
	ClosedAt                time.Time `json:"closed_at"`
}

// Recalculate enforces the closure invariant. Call before every persist.
func (c *BookingClosure) Recalculate() {
	c.TotalAmountCents = c.BookingAmountCents + c.ConsumptionsAmountCents
}

func (c *BookingClosure) PaymentSummary() string {
	var parts []string
	if c.CashAmountCents > 0 {
		parts = append(parts, "cash")
	}
	if c.TransferAmountCents > 0 {
		parts = append(parts, "transfer")
	}
	if len(parts) == 0 {
		return "unpaid"
	}
	return strings.Join(parts, " / ")
}

// CancellationToken lets an anonymous customer cancel their own public
// booking. Issued once at creation time, never regenerated.
type CancellationToken struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCancellationCode returns an opaque 8-character uppercase code.
func NewCancellationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
