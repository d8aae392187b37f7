package domain

import "time"

type CourtType string

const (
	CourtTypeIndoor  CourtType = "indoor"
	CourtTypeOutdoor CourtType = "outdoor"
	CourtTypeGlass   CourtType = "glass"
)

// Court is never hard-deleted: historical bookings reference it.
type Court struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Type       CourtType `json:"type"`
	PriceCents int64     `json:"price_cents"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TimeSlotConfig is the single process-wide slot configuration. It lives in a
// fixed single-row table and is re-read on every use, never cached.
type TimeSlotConfig struct {
	OpeningTime          string    `json:"opening_time"`
	ClosingTime          string    `json:"closing_time"`
	SlotDurationMinutes  int       `json:"slot_duration_minutes"`
	MinCancellationHours int       `json:"min_cancellation_hours"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Defaults used when no configuration row exists yet.
const (
	DefaultOpeningTime          = "08:00"
	DefaultClosingTime          = "23:00"
	DefaultSlotDurationMinutes  = 90
	DefaultMinCancellationHours = 2
)
