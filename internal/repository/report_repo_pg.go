package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClosureDetail is a closure joined with the booking it settles, as reports
// consume it.
type ClosureDetail struct {
	Closure      domain.BookingClosure
	CourtName    string
	Date         time.Time
	StartTime    string
	EndTime      string
	CustomerName string
}

// HistoryEntry is a booking with its closure, when one exists.
type HistoryEntry struct {
	Booking domain.Booking
	Closure *domain.BookingClosure
}

type ReportRepository interface {
	ClosuresByDateRange(ctx context.Context, from, to time.Time) ([]ClosureDetail, error)
	History(ctx context.Context, filter BookingFilter) ([]HistoryEntry, error)
}

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) ClosuresByDateRange(ctx context.Context, from, to time.Time) ([]ClosureDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT cl.id, cl.booking_id, cl.booking_amount_cents, cl.cash_amount_cents, cl.transfer_amount_cents,
			cl.consumptions_amount_cents, cl.total_amount_cents, cl.notes, cl.closed_by, cl.closed_at,
			c.name, b.date, b.start_time, b.end_time, b.customer_name
		FROM booking_closures cl
		JOIN bookings b ON b.id = cl.booking_id
		JOIN courts c ON c.id = b.court_id
		WHERE b.date >= $1 AND b.date <= $2
		ORDER BY b.date, b.start_time`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []ClosureDetail
	for rows.Next() {
		var d ClosureDetail
		if err := rows.Scan(&d.Closure.ID, &d.Closure.BookingID, &d.Closure.BookingAmountCents, &d.Closure.CashAmountCents,
			&d.Closure.TransferAmountCents, &d.Closure.ConsumptionsAmountCents, &d.Closure.TotalAmountCents,
			&d.Closure.Notes, &d.Closure.ClosedBy, &d.Closure.ClosedAt,
			&d.CourtName, &d.Date, &d.StartTime, &d.EndTime, &d.CustomerName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PGReportRepository) History(ctx context.Context, filter BookingFilter) ([]HistoryEntry, error) {
	query := `SELECT ` + bookingColumns + `,
			cl.id, cl.booking_amount_cents, cl.cash_amount_cents, cl.transfer_amount_cents,
			cl.consumptions_amount_cents, cl.total_amount_cents, cl.notes, cl.closed_by, cl.closed_at
		FROM bookings b
		JOIN courts c ON c.id = b.court_id
		LEFT JOIN booking_closures cl ON cl.booking_id = b.id`

	var conds []string
	var args []interface{}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, `b.date >= $`+strconv.Itoa(len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, `b.date <= $`+strconv.Itoa(len(args)))
	}
	if filter.CourtID != nil {
		args = append(args, *filter.CourtID)
		conds = append(conds, `b.court_id = $`+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, `b.status = $`+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY b.date DESC, b.start_time DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		b := &e.Booking
		var (
			closureID     *int64
			bookingCents  *int64
			cashCents     *int64
			transferCents *int64
			consumpCents  *int64
			totalCents    *int64
			notes         *string
			closedBy      *int64
			closedAt      *time.Time
		)
		if err := rows.Scan(&b.ID, &b.CourtID, &b.CourtName, &b.CourtPriceCents, &b.Date, &b.StartTime, &b.EndTime, &b.Status,
			&b.CustomerName, &b.CustomerPhone, &b.CustomerEmail, &b.Origin, &b.Notes, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
			&closureID, &bookingCents, &cashCents, &transferCents, &consumpCents, &totalCents, &notes, &closedBy, &closedAt); err != nil {
			return nil, err
		}
		if closureID != nil {
			e.Closure = &domain.BookingClosure{
				ID:                      *closureID,
				BookingID:               b.ID,
				BookingAmountCents:      *bookingCents,
				CashAmountCents:         *cashCents,
				TransferAmountCents:     *transferCents,
				ConsumptionsAmountCents: *consumpCents,
				TotalAmountCents:        *totalCents,
				ClosedBy:                closedBy,
				ClosedAt:                *closedAt,
			}
			if notes != nil {
				e.Closure.Notes = *notes
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ ReportRepository = (*PGReportRepository)(nil)
