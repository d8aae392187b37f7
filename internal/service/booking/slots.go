package booking

import (
	"context"
	"time"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/timeutil"
)

type Slot struct {
	CourtID         int64  `json:"court_id"`
	CourtName       string `json:"court_name"`
	CourtPriceCents int64  `json:"court_price_cents"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Available       bool   `json:"available"`
}

type SlotsConfig struct {
	OpeningTime         string `json:"opening_time"`
	ClosingTime         string `json:"closing_time"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}

type SlotsResult struct {
	Date   string      `json:"date"`
	Config SlotsConfig `json:"config"`
	Slots  []Slot      `json:"slots"`
}

// AvailableSlots materializes the day's bookable grid from the current time
// slot config. Slots are walked from opening to closing in duration steps;
// a trailing partial slot is discarded. A slot is unavailable when any
// non-cancelled booking overlaps it or its start is not in the future.
func (s *BookingService) AvailableSlots(ctx context.Context, date time.Time, courtID *int64) (*SlotsResult, error) {
	cfg, err := s.courts.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	opening, err := timeutil.ParseClock(cfg.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := timeutil.ParseClock(cfg.ClosingTime)
	if err != nil {
		return nil, err
	}

	result := &SlotsResult{
		Date: date.Format(timeutil.DateLayout),
		Config: SlotsConfig{
			OpeningTime:         cfg.OpeningTime,
			ClosingTime:         cfg.ClosingTime,
			SlotDurationMinutes: cfg.SlotDurationMinutes,
		},
		Slots: []Slot{},
	}

	courts, err := s.courts.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if courtID != nil {
		filtered := courts[:0]
		for _, c := range courts {
			if c.ID == *courtID {
				filtered = append(filtered, c)
			}
		}
		courts = filtered
	}
	if len(courts) == 0 {
		return result, nil
	}

	courtIDs := make([]int64, 0, len(courts))
	for _, c := range courts {
		courtIDs = append(courtIDs, c.ID)
	}

	intervals, err := s.bookings.IntervalsForDate(ctx, courtIDs, date)
	if err != nil {
		return nil, err
	}
	booked := make(map[int64][]domain.BookingInterval, len(courts))
	for _, iv := range intervals {
		booked[iv.CourtID] = append(booked[iv.CourtID], iv)
	}

	now := s.now()
	for startMin := opening; startMin+cfg.SlotDurationMinutes <= closing; startMin += cfg.SlotDurationMinutes {
		slotStart := timeutil.FormatClock(startMin)
		slotEnd := timeutil.FormatClock(startMin + cfg.SlotDurationMinutes)
		slotInstant := time.Date(date.Year(), date.Month(), date.Day(), startMin/60, startMin%60, 0, 0, time.Local)
		inFuture := slotInstant.After(now)

		for _, court := range courts {
			result.Slots = append(result.Slots, Slot{
				CourtID:         court.ID,
				CourtName:       court.Name,
				CourtPriceCents: court.PriceCents,
				StartTime:       slotStart,
				EndTime:         slotEnd,
				Available:       inFuture && !overlapsAny(booked[court.ID], slotStart, slotEnd),
			})
		}
	}
	return result, nil
}

// overlapsAny treats intervals as half-open: a booking ending exactly at the
// slot start does not block it. Zero-padded HH:MM compares chronologically.
func overlapsAny(intervals []domain.BookingInterval, slotStart, slotEnd string) bool {
	for _, iv := range intervals {
		if iv.StartTime < slotEnd && iv.EndTime > slotStart {
			return true
		}
	}
	return false
}
