package reports

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) ClosuresByDateRange(ctx context.Context, from, to time.Time) ([]repository.ClosureDetail, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repository.ClosureDetail), args.Error(1)
}

func (m *MockReportRepository) History(ctx context.Context, filter repository.BookingFilter) ([]repository.HistoryEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]repository.HistoryEntry), args.Error(1)
}

func detail(date time.Time, booking, cash, transfer, consumptions int64) repository.ClosureDetail {
	return repository.ClosureDetail{
		Closure: domain.BookingClosure{
			BookingAmountCents:      booking,
			CashAmountCents:         cash,
			TransferAmountCents:     transfer,
			ConsumptionsAmountCents: consumptions,
			TotalAmountCents:        booking + consumptions,
		},
		Date: date,
	}
}

func TestReportService_DailySummary(t *testing.T) {
	mockRepo := &MockReportRepository{}
	service := NewReportService(mockRepo)

	ctx := context.Background()
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)
	details := []repository.ClosureDetail{
		detail(day, 50000, 50000, 0, 300),
		detail(day, 60000, 20000, 40000, 0),
	}
	mockRepo.On("ClosuresByDateRange", ctx, day, day).Return(details, nil).Once()

	summary, err := service.DailySummary(ctx, day)
	assert.NoError(t, err)
	assert.Equal(t, "2026-09-10", summary.Date)
	assert.Equal(t, 2, summary.ClosuresCount)
	assert.Equal(t, int64(110000), summary.BookingAmountCents)
	assert.Equal(t, int64(70000), summary.CashAmountCents)
	assert.Equal(t, int64(40000), summary.TransferAmountCents)
	// Both closures took cash, the split one counts for transfer too.
	assert.Equal(t, 2, summary.CashClosuresCount)
	assert.Equal(t, 1, summary.TransferClosuresCount)
	assert.Equal(t, int64(300), summary.ConsumptionsAmountCents)
	assert.Equal(t, int64(110300), summary.TotalAmountCents)
	assert.Len(t, summary.Closures, 2)
	assert.Equal(t, "cash", summary.Closures[0].PaymentMethod)
	assert.Equal(t, "cash / transfer", summary.Closures[1].PaymentMethod)
}

func TestReportService_DailySummary_Empty(t *testing.T) {
	mockRepo := &MockReportRepository{}
	service := NewReportService(mockRepo)

	ctx := context.Background()
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)
	mockRepo.On("ClosuresByDateRange", ctx, day, day).Return([]repository.ClosureDetail{}, nil).Once()

	summary, err := service.DailySummary(ctx, day)
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.ClosuresCount)
	assert.Equal(t, int64(0), summary.TotalAmountCents)
	assert.Empty(t, summary.Closures)
}

func TestReportService_MonthlySummary_RollsUpPerDay(t *testing.T) {
	mockRepo := &MockReportRepository{}
	service := NewReportService(mockRepo)

	ctx := context.Background()
	first := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	last := time.Date(2026, 9, 30, 0, 0, 0, 0, time.Local)
	day10 := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)
	day12 := time.Date(2026, 9, 12, 0, 0, 0, 0, time.Local)

	details := []repository.ClosureDetail{
		detail(day10, 50000, 50000, 0, 0),
		detail(day10, 40000, 0, 40000, 500),
		detail(day12, 60000, 60000, 0, 0),
	}
	mockRepo.On("ClosuresByDateRange", ctx, first, last).Return(details, nil).Once()

	summary, err := service.MonthlySummary(ctx, 2026, time.September)
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.ClosuresCount)
	assert.Equal(t, int64(150500), summary.TotalAmountCents)

	// Only days with closures make the breakdown.
	assert.Len(t, summary.Days, 2)
	assert.Equal(t, "2026-09-10", summary.Days[0].Date)
	assert.Equal(t, 2, summary.Days[0].ClosuresCount)
	assert.Equal(t, int64(90500), summary.Days[0].TotalAmountCents)
	assert.Equal(t, "2026-09-12", summary.Days[1].Date)
	assert.Equal(t, int64(60000), summary.Days[1].TotalAmountCents)
}

func TestReportService_History_PassesFilter(t *testing.T) {
	mockRepo := &MockReportRepository{}
	service := NewReportService(mockRepo)

	ctx := context.Background()
	courtID := int64(2)
	filter := repository.BookingFilter{CourtID: &courtID}
	entries := []repository.HistoryEntry{{Booking: domain.Booking{ID: 1}}}
	mockRepo.On("History", ctx, filter).Return(entries, nil).Once()

	result, err := service.History(ctx, filter)
	assert.NoError(t, err)
	assert.Equal(t, entries, result)
}
