package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CourtRepository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Court, error)
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	Create(ctx context.Context, court *domain.Court) error
	Update(ctx context.Context, court *domain.Court) error
	UpdatePrice(ctx context.Context, id, priceCents int64) (*domain.Court, error)
	GetConfig(ctx context.Context) (*domain.TimeSlotConfig, error)
	UpdateConfig(ctx context.Context, cfg *domain.TimeSlotConfig) error
}

type PGCourtRepository struct {
	db *pgxpool.Pool
}

func NewCourtRepository(db *pgxpool.Pool) CourtRepository {
	return &PGCourtRepository{db: db}
}

const courtColumns = `id, name, court_type, price_cents, is_active, created_at, updated_at`

func (r *PGCourtRepository) List(ctx context.Context, activeOnly bool) ([]domain.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courts []domain.Court
	for rows.Next() {
		var c domain.Court
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.PriceCents, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

func (r *PGCourtRepository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	row := r.db.QueryRow(ctx, `SELECT `+courtColumns+` FROM courts WHERE id = $1`, id)
	var c domain.Court
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &c.PriceCents, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGCourtRepository) Create(ctx context.Context, court *domain.Court) error {
	return r.db.QueryRow(ctx, `INSERT INTO courts (name, court_type, price_cents, is_active)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`,
		court.Name, court.Type, court.PriceCents, court.IsActive).
		Scan(&court.ID, &court.CreatedAt, &court.UpdatedAt)
}

func (r *PGCourtRepository) Update(ctx context.Context, court *domain.Court) error {
	cmd, err := r.db.Exec(ctx, `UPDATE courts SET name = $1, court_type = $2, price_cents = $3, is_active = $4, updated_at = now()
		WHERE id = $5`, court.Name, court.Type, court.PriceCents, court.IsActive, court.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGCourtRepository) UpdatePrice(ctx context.Context, id, priceCents int64) (*domain.Court, error) {
	row := r.db.QueryRow(ctx, `UPDATE courts SET price_cents = $1, updated_at = now() WHERE id = $2
		RETURNING `+courtColumns, priceCents, id)
	var c domain.Court
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &c.PriceCents, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetConfig reads the single configuration row, inserting the defaults on
// first access. The table is constrained to one row (id = 1), which replaces
// the old active-flag convention.
func (r *PGCourtRepository) GetConfig(ctx context.Context) (*domain.TimeSlotConfig, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO time_slot_config (id, opening_time, closing_time, slot_duration_minutes, min_cancellation_hours)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET id = time_slot_config.id
		RETURNING opening_time, closing_time, slot_duration_minutes, min_cancellation_hours, updated_at`,
		domain.DefaultOpeningTime, domain.DefaultClosingTime, domain.DefaultSlotDurationMinutes, domain.DefaultMinCancellationHours)

	var cfg domain.TimeSlotConfig
	if err := row.Scan(&cfg.OpeningTime, &cfg.ClosingTime, &cfg.SlotDurationMinutes, &cfg.MinCancellationHours, &cfg.UpdatedAt); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateConfig upserts so a write on a fresh database seeds the row itself.
func (r *PGCourtRepository) UpdateConfig(ctx context.Context, cfg *domain.TimeSlotConfig) error {
	return r.db.QueryRow(ctx, `INSERT INTO time_slot_config (id, opening_time, closing_time, slot_duration_minutes, min_cancellation_hours)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			min_cancellation_hours = EXCLUDED.min_cancellation_hours,
			updated_at = now()
		RETURNING updated_at`,
		cfg.OpeningTime, cfg.ClosingTime, cfg.SlotDurationMinutes, cfg.MinCancellationHours).
		Scan(&cfg.UpdatedAt)
}

var _ CourtRepository = (*PGCourtRepository)(nil)
