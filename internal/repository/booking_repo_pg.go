package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingFilter struct {
	CourtID          *int64
	Date             *time.Time
	DateFrom         *time.Time
	DateTo           *time.Time
	Status           *domain.BookingStatus
	ExcludeCancelled bool
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking, token *domain.CancellationToken) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Cancel(ctx context.Context, id int64) (*domain.Booking, error)
	IntervalsForDate(ctx context.Context, courtIDs []int64, date time.Time) ([]domain.BookingInterval, error)
	Search(ctx context.Context, name, phone string, from time.Time) ([]domain.Booking, error)
	Close(ctx context.Context, closure *domain.BookingClosure) error
	GetClosure(ctx context.Context, bookingID int64) (*domain.BookingClosure, error)
	RecalcClosureConsumptions(ctx context.Context, bookingID int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.court_id, c.name, c.price_cents, b.date, b.start_time, b.end_time, b.status,
	b.customer_name, b.customer_phone, b.customer_email, b.origin, b.notes, b.created_by, b.created_at, b.updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.CourtID, &b.CourtName, &b.CourtPriceCents, &b.Date, &b.StartTime, &b.EndTime, &b.Status,
		&b.CustomerName, &b.CustomerPhone, &b.CustomerEmail, &b.Origin, &b.Notes, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create inserts a booking (and its cancellation token for public bookings)
// inside one transaction. Concurrent creates for the same (court, date) are
// serialized with a transaction-scoped advisory lock so the overlap re-check
// cannot race; the unique constraint on (court, date, start_time) stays as a
// backstop for exact-start duplicates.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking, token *domain.CancellationToken) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	lockKey := fmt.Sprintf("booking:%d:%s", booking.CourtID, booking.Date.Format("2006-01-02"))
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return err
	}

	var overlapping bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE court_id = $1 AND date = $2 AND status <> 'cancelled'
			  AND start_time < $4 AND end_time > $3
		)`, booking.CourtID, booking.Date, booking.StartTime, booking.EndTime).Scan(&overlapping); err != nil {
		return err
	}
	if overlapping {
		return domain.ErrSlotTaken
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings
			(court_id, date, start_time, end_time, status, customer_name, customer_phone, customer_email, origin, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		booking.CourtID, booking.Date, booking.StartTime, booking.EndTime, booking.Status,
		booking.CustomerName, booking.CustomerPhone, booking.CustomerEmail, booking.Origin, booking.Notes, booking.CreatedBy).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotTaken
		}
		return err
	}

	if token != nil {
		token.BookingID = booking.ID
		if err := tx.QueryRow(ctx, `INSERT INTO cancellation_tokens (booking_id, token)
			VALUES ($1, $2) RETURNING id, created_at`, token.BookingID, token.Token).
			Scan(&token.ID, &token.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+`
		FROM bookings b JOIN courts c ON c.id = b.court_id WHERE b.id = $1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+`
		FROM bookings b
		JOIN courts c ON c.id = b.court_id
		JOIN cancellation_tokens t ON t.booking_id = b.id
		WHERE t.token = $1`, token)
	return scanBooking(row)
}

func (r *PGBookingRepository) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN courts c ON c.id = b.court_id`
	var conds []string
	var args []interface{}

	add := func(cond string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.CourtID != nil {
		add("b.court_id = $%d", *filter.CourtID)
	}
	if filter.Date != nil {
		add("b.date = $%d", *filter.Date)
	}
	if filter.DateFrom != nil {
		add("b.date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("b.date <= $%d", *filter.DateTo)
	}
	if filter.Status != nil {
		add("b.status = $%d", *filter.Status)
	}
	if filter.ExcludeCancelled {
		conds = append(conds, "b.status <> 'cancelled'")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY b.date, b.start_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// Update rewrites the editable fields, re-checking overlap against every
// other non-cancelled booking under the same per-(court, date) lock as Create.
func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	lockKey := fmt.Sprintf("booking:%d:%s", booking.CourtID, booking.Date.Format("2006-01-02"))
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return err
	}

	var overlapping bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE court_id = $1 AND date = $2 AND status <> 'cancelled' AND id <> $5
			  AND start_time < $4 AND end_time > $3
		)`, booking.CourtID, booking.Date, booking.StartTime, booking.EndTime, booking.ID).Scan(&overlapping); err != nil {
		return err
	}
	if overlapping {
		return domain.ErrSlotTaken
	}

	cmd, err := tx.Exec(ctx, `UPDATE bookings SET
			court_id = $1, date = $2, start_time = $3, end_time = $4,
			customer_name = $5, customer_phone = $6, notes = $7, updated_at = now()
		WHERE id = $8`,
		booking.CourtID, booking.Date, booking.StartTime, booking.EndTime,
		booking.CustomerName, booking.CustomerPhone, booking.Notes, booking.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotTaken
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

// Cancel only fires while the booking is still in a cancellable status, so a
// stale cancel cannot overwrite a concurrently committed close.
func (r *PGBookingRepository) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status IN ('available', 'reserved')`, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidState
	}
	return r.GetByID(ctx, id)
}

// IntervalsForDate fetches every non-cancelled booking for the given courts
// on one date in a single query, projected to what the slot generator needs.
func (r *PGBookingRepository) IntervalsForDate(ctx context.Context, courtIDs []int64, date time.Time) ([]domain.BookingInterval, error) {
	rows, err := r.db.Query(ctx, `SELECT court_id, start_time, end_time
		FROM bookings
		WHERE court_id = ANY($1) AND date = $2 AND status <> 'cancelled'`, courtIDs, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []domain.BookingInterval
	for rows.Next() {
		var iv domain.BookingInterval
		if err := rows.Scan(&iv.CourtID, &iv.StartTime, &iv.EndTime); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

func (r *PGBookingRepository) Search(ctx context.Context, name, phone string, from time.Time) ([]domain.Booking, error) {
	var conds []string
	args := []interface{}{from}
	if name != "" {
		args = append(args, "%"+name+"%")
		conds = append(conds, fmt.Sprintf("b.customer_name ILIKE $%d", len(args)))
	}
	if phone != "" {
		args = append(args, phone)
		conds = append(conds, fmt.Sprintf("b.customer_phone = $%d", len(args)))
	}
	if len(conds) == 0 {
		return nil, nil
	}

	query := `SELECT ` + bookingColumns + `
		FROM bookings b JOIN courts c ON c.id = b.court_id
		WHERE b.status = 'reserved' AND b.date >= $1 AND (` + strings.Join(conds, " OR ") + `)
		ORDER BY b.date, b.start_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// Close locks the booking row for the whole status-check + closure-insert +
// status-update sequence so two concurrent close attempts cannot both pass
// the checks. Fills in ConsumptionsAmountCents, TotalAmountCents, ID and
// ClosedAt on the way out.
func (r *PGBookingRepository) Close(ctx context.Context, closure *domain.BookingClosure) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status domain.BookingStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, closure.BookingID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if status != domain.BookingStatusReserved {
		return domain.ErrInvalidState
	}

	var alreadyClosed bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM booking_closures WHERE booking_id = $1)`, closure.BookingID).Scan(&alreadyClosed); err != nil {
		return err
	}
	if alreadyClosed {
		return domain.ErrAlreadyClosed
	}

	if err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(total_price_cents), 0) FROM consumptions WHERE booking_id = $1`, closure.BookingID).
		Scan(&closure.ConsumptionsAmountCents); err != nil {
		return err
	}
	closure.Recalculate()

	if err := tx.QueryRow(ctx, `INSERT INTO booking_closures
			(booking_id, booking_amount_cents, cash_amount_cents, transfer_amount_cents, consumptions_amount_cents, total_amount_cents, notes, closed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, closed_at`,
		closure.BookingID, closure.BookingAmountCents, closure.CashAmountCents, closure.TransferAmountCents,
		closure.ConsumptionsAmountCents, closure.TotalAmountCents, closure.Notes, closure.ClosedBy).
		Scan(&closure.ID, &closure.ClosedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyClosed
		}
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2`,
		domain.BookingStatusCompleted, closure.BookingID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetClosure(ctx context.Context, bookingID int64) (*domain.BookingClosure, error) {
	row := r.db.QueryRow(ctx, `SELECT id, booking_id, booking_amount_cents, cash_amount_cents, transfer_amount_cents,
			consumptions_amount_cents, total_amount_cents, notes, closed_by, closed_at
		FROM booking_closures WHERE booking_id = $1`, bookingID)
	var c domain.BookingClosure
	if err := row.Scan(&c.ID, &c.BookingID, &c.BookingAmountCents, &c.CashAmountCents, &c.TransferAmountCents,
		&c.ConsumptionsAmountCents, &c.TotalAmountCents, &c.Notes, &c.ClosedBy, &c.ClosedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// RecalcClosureConsumptions re-sums the booking's consumptions into its
// closure. A no-op when the booking has no closure yet.
func (r *PGBookingRepository) RecalcClosureConsumptions(ctx context.Context, bookingID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE booking_closures SET
			consumptions_amount_cents = s.total,
			total_amount_cents = booking_amount_cents + s.total
		FROM (SELECT COALESCE(SUM(total_price_cents), 0) AS total FROM consumptions WHERE booking_id = $1) s
		WHERE booking_id = $1`, bookingID)
	return err
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.CourtID, &b.CourtName, &b.CourtPriceCents, &b.Date, &b.StartTime, &b.EndTime, &b.Status,
			&b.CustomerName, &b.CustomerPhone, &b.CustomerEmail, &b.Origin, &b.Notes, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ BookingRepository = (*PGBookingRepository)(nil)
