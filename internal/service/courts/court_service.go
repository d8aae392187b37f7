package courts

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/repository"
	"github.com/Domenick1991/courtbooking/internal/timeutil"
)

type CourtUseCase interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Court, error)
	ActiveCourts(ctx context.Context) ([]domain.Court, error)
	Get(ctx context.Context, id int64) (*domain.Court, error)
	Create(ctx context.Context, input CourtInput) (*domain.Court, error)
	Update(ctx context.Context, id int64, input CourtInput) (*domain.Court, error)
	UpdatePrice(ctx context.Context, id, priceCents int64) (*domain.Court, error)
	GetConfig(ctx context.Context) (*domain.TimeSlotConfig, error)
	UpdateConfig(ctx context.Context, input ConfigInput) (*domain.TimeSlotConfig, error)
}

// Cache holds the active-court listing for the public slot browser. The time
// slot config is deliberately never cached: a stale grid step or cancellation
// window changes booking outcomes.
type Cache interface {
	GetActiveCourts(ctx context.Context) ([]domain.Court, error)
	SetActiveCourts(ctx context.Context, courts []domain.Court) error
	InvalidateCourts(ctx context.Context) error
}

type CourtService struct {
	courts repository.CourtRepository
	cache  Cache
}

type CourtInput struct {
	Name       string           `json:"name"`
	Type       domain.CourtType `json:"type"`
	PriceCents int64            `json:"price_cents"`
	IsActive   bool             `json:"is_active"`
}

type ConfigInput struct {
	OpeningTime          string `json:"opening_time"`
	ClosingTime          string `json:"closing_time"`
	SlotDurationMinutes  int    `json:"slot_duration_minutes"`
	MinCancellationHours int    `json:"min_cancellation_hours"`
}

func NewCourtService(courts repository.CourtRepository, cache Cache) *CourtService {
	return &CourtService{courts: courts, cache: cache}
}

func (s *CourtService) List(ctx context.Context, activeOnly bool) ([]domain.Court, error) {
	return s.courts.List(ctx, activeOnly)
}

// ActiveCourts serves the public listing through the cache.
func (s *CourtService) ActiveCourts(ctx context.Context) ([]domain.Court, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetActiveCourts(ctx); err != nil {
			log.Printf("WARNING: failed to read courts cache: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	courts, err := s.courts.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetActiveCourts(ctx, courts); err != nil {
			log.Printf("WARNING: failed to populate courts cache: %v", err)
		}
	}
	return courts, nil
}

func (s *CourtService) Get(ctx context.Context, id int64) (*domain.Court, error) {
	return s.courts.GetByID(ctx, id)
}

func (s *CourtService) Create(ctx context.Context, input CourtInput) (*domain.Court, error) {
	if err := validateCourt(input); err != nil {
		return nil, err
	}
	court := &domain.Court{
		Name:       input.Name,
		Type:       input.Type,
		PriceCents: input.PriceCents,
		IsActive:   input.IsActive,
	}
	if err := s.courts.Create(ctx, court); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return court, nil
}

func (s *CourtService) Update(ctx context.Context, id int64, input CourtInput) (*domain.Court, error) {
	if err := validateCourt(input); err != nil {
		return nil, err
	}
	court, err := s.courts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	court.Name = input.Name
	court.Type = input.Type
	court.PriceCents = input.PriceCents
	court.IsActive = input.IsActive
	if err := s.courts.Update(ctx, court); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return court, nil
}

func (s *CourtService) UpdatePrice(ctx context.Context, id, priceCents int64) (*domain.Court, error) {
	if priceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	court, err := s.courts.UpdatePrice(ctx, id, priceCents)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return court, nil
}

func (s *CourtService) GetConfig(ctx context.Context) (*domain.TimeSlotConfig, error) {
	return s.courts.GetConfig(ctx)
}

// UpdateConfig rewrites the single configuration row. Existing bookings keep
// the grid they were created on; only future slot generation changes.
func (s *CourtService) UpdateConfig(ctx context.Context, input ConfigInput) (*domain.TimeSlotConfig, error) {
	opening, err := timeutil.ParseClock(input.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	closing, err := timeutil.ParseClock(input.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if closing <= opening {
		return nil, fmt.Errorf("%w: closing time must be after opening time", domain.ErrValidation)
	}
	if input.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive", domain.ErrValidation)
	}
	if opening+input.SlotDurationMinutes > closing {
		return nil, fmt.Errorf("%w: slot duration does not fit the opening hours", domain.ErrValidation)
	}
	if input.MinCancellationHours < 0 {
		return nil, fmt.Errorf("%w: minimum cancellation hours must not be negative", domain.ErrValidation)
	}

	cfg := &domain.TimeSlotConfig{
		OpeningTime:          timeutil.FormatClock(opening),
		ClosingTime:          timeutil.FormatClock(closing),
		SlotDurationMinutes:  input.SlotDurationMinutes,
		MinCancellationHours: input.MinCancellationHours,
	}
	if err := s.courts.UpdateConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *CourtService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCourts(ctx); err != nil {
		log.Printf("WARNING: failed to invalidate courts cache: %v", err)
	}
}

func validateCourt(input CourtInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: court name is required", domain.ErrValidation)
	}
	switch input.Type {
	case domain.CourtTypeIndoor, domain.CourtTypeOutdoor, domain.CourtTypeGlass:
	default:
		return fmt.Errorf("%w: unknown court type %q", domain.ErrValidation, input.Type)
	}
	if input.PriceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}

var _ CourtUseCase = (*CourtService)(nil)
