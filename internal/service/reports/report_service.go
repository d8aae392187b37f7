package reports

import (
	"context"
	"time"

	"github.com/Domenick1991/courtbooking/internal/repository"
	"github.com/Domenick1991/courtbooking/internal/timeutil"
)

type ReportUseCase interface {
	DailySummary(ctx context.Context, date time.Time) (*DailySummary, error)
	History(ctx context.Context, filter repository.BookingFilter) ([]repository.HistoryEntry, error)
	MonthlySummary(ctx context.Context, year int, month time.Month) (*MonthlySummary, error)
}

type ReportService struct {
	reports repository.ReportRepository
}

type ClosureLine struct {
	BookingID               int64  `json:"booking_id"`
	CourtName               string `json:"court_name"`
	Date                    string `json:"date"`
	StartTime               string `json:"start_time"`
	EndTime                 string `json:"end_time"`
	CustomerName            string `json:"customer_name"`
	BookingAmountCents      int64  `json:"booking_amount_cents"`
	CashAmountCents         int64  `json:"cash_amount_cents"`
	TransferAmountCents     int64  `json:"transfer_amount_cents"`
	ConsumptionsAmountCents int64  `json:"consumptions_amount_cents"`
	TotalAmountCents        int64  `json:"total_amount_cents"`
	PaymentMethod           string `json:"payment_method"`
}

type DailySummary struct {
	Date                    string        `json:"date"`
	ClosuresCount           int           `json:"closures_count"`
	BookingAmountCents      int64         `json:"booking_amount_cents"`
	CashAmountCents         int64         `json:"cash_amount_cents"`
	CashClosuresCount       int           `json:"cash_closures_count"`
	TransferAmountCents     int64         `json:"transfer_amount_cents"`
	TransferClosuresCount   int           `json:"transfer_closures_count"`
	ConsumptionsAmountCents int64         `json:"consumptions_amount_cents"`
	TotalAmountCents        int64         `json:"total_amount_cents"`
	Closures                []ClosureLine `json:"closures"`
}

type DayTotal struct {
	Date             string `json:"date"`
	ClosuresCount    int    `json:"closures_count"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

type MonthlySummary struct {
	Year                    int        `json:"year"`
	Month                   int        `json:"month"`
	ClosuresCount           int        `json:"closures_count"`
	BookingAmountCents      int64      `json:"booking_amount_cents"`
	CashAmountCents         int64      `json:"cash_amount_cents"`
	TransferAmountCents     int64      `json:"transfer_amount_cents"`
	ConsumptionsAmountCents int64      `json:"consumptions_amount_cents"`
	TotalAmountCents        int64      `json:"total_amount_cents"`
	Days                    []DayTotal `json:"days"`
}

func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// DailySummary aggregates every closure for bookings played on the given day.
func (s *ReportService) DailySummary(ctx context.Context, date time.Time) (*DailySummary, error) {
	details, err := s.reports.ClosuresByDateRange(ctx, date, date)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Date:     date.Format(timeutil.DateLayout),
		Closures: make([]ClosureLine, 0, len(details)),
	}
	for _, d := range details {
		summary.ClosuresCount++
		summary.BookingAmountCents += d.Closure.BookingAmountCents
		summary.CashAmountCents += d.Closure.CashAmountCents
		summary.TransferAmountCents += d.Closure.TransferAmountCents
		summary.ConsumptionsAmountCents += d.Closure.ConsumptionsAmountCents
		summary.TotalAmountCents += d.Closure.TotalAmountCents
		// A split payment counts towards both methods.
		if d.Closure.CashAmountCents > 0 {
			summary.CashClosuresCount++
		}
		if d.Closure.TransferAmountCents > 0 {
			summary.TransferClosuresCount++
		}
		summary.Closures = append(summary.Closures, ClosureLine{
			BookingID:               d.Closure.BookingID,
			CourtName:               d.CourtName,
			Date:                    d.Date.Format(timeutil.DateLayout),
			StartTime:               d.StartTime,
			EndTime:                 d.EndTime,
			CustomerName:            d.CustomerName,
			BookingAmountCents:      d.Closure.BookingAmountCents,
			CashAmountCents:         d.Closure.CashAmountCents,
			TransferAmountCents:     d.Closure.TransferAmountCents,
			ConsumptionsAmountCents: d.Closure.ConsumptionsAmountCents,
			TotalAmountCents:        d.Closure.TotalAmountCents,
			PaymentMethod:           d.Closure.PaymentSummary(),
		})
	}
	return summary, nil
}

func (s *ReportService) History(ctx context.Context, filter repository.BookingFilter) ([]repository.HistoryEntry, error) {
	return s.reports.History(ctx, filter)
}

// MonthlySummary rolls closures up per day; days with no closures are
// omitted from the breakdown.
func (s *ReportService) MonthlySummary(ctx context.Context, year int, month time.Month) (*MonthlySummary, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	details, err := s.reports.ClosuresByDateRange(ctx, first, last)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		Year:  year,
		Month: int(month),
		Days:  []DayTotal{},
	}
	byDay := make(map[string]int)
	for _, d := range details {
		summary.ClosuresCount++
		summary.BookingAmountCents += d.Closure.BookingAmountCents
		summary.CashAmountCents += d.Closure.CashAmountCents
		summary.TransferAmountCents += d.Closure.TransferAmountCents
		summary.ConsumptionsAmountCents += d.Closure.ConsumptionsAmountCents
		summary.TotalAmountCents += d.Closure.TotalAmountCents

		day := d.Date.Format(timeutil.DateLayout)
		idx, ok := byDay[day]
		if !ok {
			idx = len(summary.Days)
			byDay[day] = idx
			summary.Days = append(summary.Days, DayTotal{Date: day})
		}
		summary.Days[idx].ClosuresCount++
		summary.Days[idx].TotalAmountCents += d.Closure.TotalAmountCents
	}
	return summary, nil
}

var _ ReportUseCase = (*ReportService)(nil)
