package booking

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func slotsConfig() *domain.TimeSlotConfig {
	return &domain.TimeSlotConfig{
		OpeningTime:          "10:00",
		ClosingTime:          "16:00",
		SlotDurationMinutes:  90,
		MinCancellationHours: 2,
	}
}

func slotsService(t *testing.T, courts []domain.Court, intervals []domain.BookingInterval, now time.Time) *BookingService {
	t.Helper()
	mockBookings := &MockBookingRepository{}
	mockCourts := &MockCourtRepository{}

	mockCourts.On("GetConfig", mock.Anything).Return(slotsConfig(), nil)
	mockCourts.On("List", mock.Anything, true).Return(courts, nil)
	mockBookings.On("IntervalsForDate", mock.Anything, mock.Anything, mock.Anything).Return(intervals, nil)

	return NewBookingService(mockBookings, mockCourts, nil, WithClock(func() time.Time { return now }))
}

func TestAvailableSlots_GridWalksToClosing(t *testing.T) {
	now := time.Date(2026, 9, 9, 8, 0, 0, 0, time.Local)
	service := slotsService(t, []domain.Court{{ID: 1, Name: "Court 1", PriceCents: 50000}}, nil, now)

	result, err := service.AvailableSlots(context.Background(), testDate(), nil)
	assert.NoError(t, err)

	// 10:00-16:00 at 90 minutes: the 14:30 slot ends exactly at closing and
	// is kept, the next one would spill past it.
	assert.Len(t, result.Slots, 4)
	assert.Equal(t, "10:00", result.Slots[0].StartTime)
	assert.Equal(t, "11:30", result.Slots[0].EndTime)
	assert.Equal(t, "14:30", result.Slots[3].StartTime)
	assert.Equal(t, "16:00", result.Slots[3].EndTime)
	for _, slot := range result.Slots {
		assert.True(t, slot.Available)
	}
	assert.Equal(t, "10:00", result.Config.OpeningTime)
	assert.Equal(t, 90, result.Config.SlotDurationMinutes)
}

func TestAvailableSlots_BookingBlocksOnlyItsCourt(t *testing.T) {
	now := time.Date(2026, 9, 9, 8, 0, 0, 0, time.Local)
	courts := []domain.Court{{ID: 1, Name: "Court 1"}, {ID: 2, Name: "Court 2"}}
	intervals := []domain.BookingInterval{{CourtID: 1, StartTime: "10:00", EndTime: "11:30"}}
	service := slotsService(t, courts, intervals, now)

	result, err := service.AvailableSlots(context.Background(), testDate(), nil)
	assert.NoError(t, err)
	assert.Len(t, result.Slots, 8)

	// Slot-major order: both courts' 10:00 slots come first.
	assert.Equal(t, int64(1), result.Slots[0].CourtID)
	assert.False(t, result.Slots[0].Available)
	assert.Equal(t, int64(2), result.Slots[1].CourtID)
	assert.True(t, result.Slots[1].Available)
	for _, slot := range result.Slots[2:] {
		assert.True(t, slot.Available)
	}
}

func TestAvailableSlots_NonAlignedBookingBlocksOverlappedSlots(t *testing.T) {
	now := time.Date(2026, 9, 9, 8, 0, 0, 0, time.Local)
	courts := []domain.Court{{ID: 1, Name: "Court 1"}}
	// 11:00-12:00 straddles the 10:00-11:30 and 11:30-13:00 slots.
	intervals := []domain.BookingInterval{{CourtID: 1, StartTime: "11:00", EndTime: "12:00"}}
	service := slotsService(t, courts, intervals, now)

	result, err := service.AvailableSlots(context.Background(), testDate(), nil)
	assert.NoError(t, err)
	assert.False(t, result.Slots[0].Available)
	assert.False(t, result.Slots[1].Available)
	assert.True(t, result.Slots[2].Available)
	assert.True(t, result.Slots[3].Available)
}

func TestAvailableSlots_AdjacentBookingDoesNotBlock(t *testing.T) {
	now := time.Date(2026, 9, 9, 8, 0, 0, 0, time.Local)
	courts := []domain.Court{{ID: 1, Name: "Court 1"}}
	// Ends exactly when the 11:30 slot starts; half-open intervals don't touch.
	intervals := []domain.BookingInterval{{CourtID: 1, StartTime: "10:00", EndTime: "11:30"}}
	service := slotsService(t, courts, intervals, now)

	result, err := service.AvailableSlots(context.Background(), testDate(), nil)
	assert.NoError(t, err)
	assert.False(t, result.Slots[0].Available)
	assert.True(t, result.Slots[1].Available)
}

func TestAvailableSlots_PastSlotsUnavailable(t *testing.T) {
	// Midday on the requested date: the 10:00 and 11:30 slots already started.
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.Local)
	service := slotsService(t, []domain.Court{{ID: 1, Name: "Court 1"}}, nil, now)

	result, err := service.AvailableSlots(context.Background(), testDate(), nil)
	assert.NoError(t, err)
	assert.False(t, result.Slots[0].Available)
	assert.False(t, result.Slots[1].Available)
	assert.True(t, result.Slots[2].Available) // 13:00
	assert.True(t, result.Slots[3].Available)
}

func TestAvailableSlots_CourtFilter(t *testing.T) {
	now := time.Date(2026, 9, 9, 8, 0, 0, 0, time.Local)
	courts := []domain.Court{{ID: 1, Name: "Court 1"}, {ID: 2, Name: "Court 2"}}
	service := slotsService(t, courts, nil, now)

	courtID := int64(2)
	result, err := service.AvailableSlots(context.Background(), testDate(), &courtID)
	assert.NoError(t, err)
	assert.Len(t, result.Slots, 4)
	for _, slot := range result.Slots {
		assert.Equal(t, int64(2), slot.CourtID)
	}
}

func TestAvailableSlots_NoActiveCourts(t *testing.T) {
	now := time.Date(2026, 9, 9, 8, 0, 0, 0, time.Local)
	service := slotsService(t, []domain.Court{}, nil, now)

	result, err := service.AvailableSlots(context.Background(), testDate(), nil)
	assert.NoError(t, err)
	assert.NotNil(t, result.Slots)
	assert.Empty(t, result.Slots)
}
