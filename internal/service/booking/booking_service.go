package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/kafka"
	"github.com/Domenick1991/courtbooking/internal/repository"
	"github.com/Domenick1991/courtbooking/internal/timeutil"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CreatePublic(ctx context.Context, input CreateBookingInput) (*domain.Booking, *domain.CancellationToken, error)
	Get(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error)
	Calendar(ctx context.Context, dateFrom, dateTo *time.Time, courtID *int64) ([]domain.Booking, error)
	Update(ctx context.Context, id int64, input UpdateBookingInput) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64) (*domain.Booking, error)
	CancelByToken(ctx context.Context, token string) (*domain.Booking, error)
	CancelPublicByID(ctx context.Context, id int64) (*domain.Booking, error)
	Verify(ctx context.Context, token string) (*VerifyResult, error)
	Close(ctx context.Context, input CloseBookingInput) (*domain.BookingClosure, error)
	Closure(ctx context.Context, bookingID int64) (*domain.BookingClosure, error)
	SearchCustomerBookings(ctx context.Context, name, phone string) ([]CustomerBooking, error)
	AvailableSlots(ctx context.Context, date time.Time, courtID *int64) (*SlotsResult, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	courts             repository.CourtRepository
	producer           Producer
	notificationsTopic string
	now                func() time.Time
}

type CreateBookingInput struct {
	CourtID       int64  `json:"court_id"`
	Date          time.Time
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes"`
	CreatedBy     *int64
}

type UpdateBookingInput struct {
	CourtID       *int64
	Date          *time.Time
	StartTime     *string
	EndTime       *string
	CustomerName  *string
	CustomerPhone *string
	Notes         *string
}

type CloseBookingInput struct {
	BookingID           int64
	BookingAmountCents  *int64
	CashAmountCents     int64
	TransferAmountCents int64
	Notes               string
	ClosedBy            *int64
}

type VerifyResult struct {
	Booking              *domain.Booking
	CanCancel            bool
	MinCancellationHours int
	HoursUntilBooking    float64
}

type CustomerBooking struct {
	Booking              domain.Booking
	CanCancel            bool
	MinCancellationHours int
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	courts repository.CourtRepository,
	producer Producer,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		courts:   courts,
		producer: producer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create reserves a slot from the staff panel.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	return s.create(ctx, input, domain.BookingOriginAdmin, nil)
}

// CreatePublic reserves a slot for an anonymous customer, issues the
// cancellation token in the same transaction and notifies admins.
func (s *BookingService) CreatePublic(ctx context.Context, input CreateBookingInput) (*domain.Booking, *domain.CancellationToken, error) {
	token := &domain.CancellationToken{Token: domain.NewCancellationCode()}
	input.CreatedBy = nil
	booking, err := s.create(ctx, input, domain.BookingOriginPublic, token)
	if err != nil {
		return nil, nil, err
	}
	s.publish(ctx, string(domain.NotificationBookingCreated), booking)
	return booking, token, nil
}

func (s *BookingService) create(ctx context.Context, input CreateBookingInput, origin domain.BookingOrigin, token *domain.CancellationToken) (*domain.Booking, error) {
	if err := validateInterval(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	court, err := s.courts.GetByID(ctx, input.CourtID)
	if err != nil {
		return nil, err
	}
	if !court.IsActive {
		return nil, domain.ErrInactiveCourt
	}

	booking := &domain.Booking{
		CourtID:         court.ID,
		CourtName:       court.Name,
		CourtPriceCents: court.PriceCents,
		Date:            input.Date,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Status:          domain.BookingStatusReserved,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerEmail:   input.CustomerEmail,
		Origin:          origin,
		Notes:           input.Notes,
		CreatedBy:       input.CreatedBy,
	}

	if err := s.bookings.Create(ctx, booking, token); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	return s.bookings.List(ctx, filter)
}

// Calendar lists non-cancelled bookings for a date range, defaulting to the
// current week when no range is given.
func (s *BookingService) Calendar(ctx context.Context, dateFrom, dateTo *time.Time, courtID *int64) ([]domain.Booking, error) {
	if dateFrom == nil && dateTo == nil {
		today := s.now()
		offset := (int(today.Weekday()) + 6) % 7 // days since Monday
		weekStart := time.Date(today.Year(), today.Month(), today.Day()-offset, 0, 0, 0, 0, time.Local)
		weekEnd := weekStart.AddDate(0, 0, 6)
		dateFrom, dateTo = &weekStart, &weekEnd
	}
	return s.bookings.List(ctx, repository.BookingFilter{
		CourtID:          courtID,
		DateFrom:         dateFrom,
		DateTo:           dateTo,
		ExcludeCancelled: true,
	})
}

// Update edits a booking's schedule or customer fields, re-running the same
// interval, active-court and overlap checks as creation (excluding itself).
func (s *BookingService) Update(ctx context.Context, id int64, input UpdateBookingInput) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanBeCancelled() {
		return nil, domain.ErrInvalidState
	}

	if input.CourtID != nil && *input.CourtID != booking.CourtID {
		court, err := s.courts.GetByID(ctx, *input.CourtID)
		if err != nil {
			return nil, err
		}
		if !court.IsActive {
			return nil, domain.ErrInactiveCourt
		}
		booking.CourtID = court.ID
		booking.CourtName = court.Name
		booking.CourtPriceCents = court.PriceCents
	}
	if input.Date != nil {
		booking.Date = *input.Date
	}
	if input.StartTime != nil {
		booking.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		booking.EndTime = *input.EndTime
	}
	if input.CustomerName != nil {
		booking.CustomerName = *input.CustomerName
	}
	if input.CustomerPhone != nil {
		booking.CustomerPhone = *input.CustomerPhone
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}

	if err := validateInterval(booking.StartTime, booking.EndTime); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel is the staff path: no minimum-notice check.
func (s *BookingService) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking, false)
}

// CancelByToken is the customer self-service path: the cancellation code
// identifies the booking and the minimum notice is enforced.
func (s *BookingService) CancelByToken(ctx context.Context, token string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return s.cancel(ctx, booking, true)
}

// CancelPublicByID cancels by booking id on behalf of a customer found via
// search; the notice check still applies.
func (s *BookingService) CancelPublicByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking, true)
}

func (s *BookingService) cancel(ctx context.Context, booking *domain.Booking, enforceNotice bool) (*domain.Booking, error) {
	if !booking.CanBeCancelled() {
		return nil, domain.ErrInvalidState
	}

	if enforceNotice {
		cfg, err := s.courts.GetConfig(ctx)
		if err != nil {
			return nil, err
		}
		if s.hoursUntil(booking) < float64(cfg.MinCancellationHours) {
			return nil, domain.ErrTooLateToCancel
		}
	}

	// Status-only transition: must not re-trigger creation-time checks. The
	// repository re-checks the status so a concurrent close wins the race.
	updated, err := s.bookings.Cancel(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	if enforceNotice {
		s.publish(ctx, string(domain.NotificationBookingCancelled), updated)
	}
	return updated, nil
}

// Verify resolves a booking by its cancellation code and reports whether it
// can still be cancelled.
func (s *BookingService) Verify(ctx context.Context, token string) (*VerifyResult, error) {
	booking, err := s.bookings.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	cfg, err := s.courts.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	hours := s.hoursUntil(booking)
	return &VerifyResult{
		Booking:              booking,
		CanCancel:            booking.CanBeCancelled() && hours >= float64(cfg.MinCancellationHours),
		MinCancellationHours: cfg.MinCancellationHours,
		HoursUntilBooking:    math.Round(hours*10) / 10,
	}, nil
}

// Close settles a reserved booking. The amount defaults to the court's
// current price when omitted, and the cash/transfer split must add up to it
// exactly.
func (s *BookingService) Close(ctx context.Context, input CloseBookingInput) (*domain.BookingClosure, error) {
	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	amount := booking.CourtPriceCents
	if input.BookingAmountCents != nil {
		amount = *input.BookingAmountCents
	}
	if amount < 0 || input.CashAmountCents < 0 || input.TransferAmountCents < 0 {
		return nil, fmt.Errorf("%w: amounts must not be negative", domain.ErrValidation)
	}
	if input.CashAmountCents+input.TransferAmountCents != amount {
		return nil, fmt.Errorf("%w: cash and transfer amounts must add up to the booking amount", domain.ErrValidation)
	}

	closure := &domain.BookingClosure{
		BookingID:           booking.ID,
		BookingAmountCents:  amount,
		CashAmountCents:     input.CashAmountCents,
		TransferAmountCents: input.TransferAmountCents,
		Notes:               input.Notes,
		ClosedBy:            input.ClosedBy,
	}
	if err := s.bookings.Close(ctx, closure); err != nil {
		return nil, err
	}
	return closure, nil
}

func (s *BookingService) Closure(ctx context.Context, bookingID int64) (*domain.BookingClosure, error) {
	return s.bookings.GetClosure(ctx, bookingID)
}

// SearchCustomerBookings finds today-or-future reserved bookings by customer
// name (substring) or exact phone. Requiring at least one of the two is the
// caller's concern.
func (s *BookingService) SearchCustomerBookings(ctx context.Context, name, phone string) ([]CustomerBooking, error) {
	today := s.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)

	bookings, err := s.bookings.Search(ctx, name, phone, today)
	if err != nil {
		return nil, err
	}

	cfg, err := s.courts.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]CustomerBooking, 0, len(bookings))
	for _, b := range bookings {
		results = append(results, CustomerBooking{
			Booking:              b,
			CanCancel:            b.CanBeCancelled() && s.hoursUntil(&b) >= float64(cfg.MinCancellationHours),
			MinCancellationHours: cfg.MinCancellationHours,
		})
	}
	return results, nil
}

func (s *BookingService) hoursUntil(b *domain.Booking) float64 {
	return b.StartsAt().Sub(s.now()).Hours()
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:         eventType,
		BookingID:    b.ID,
		CourtName:    b.CourtName,
		CustomerName: b.CustomerName,
		Date:         b.Date.Format(timeutil.DateLayout),
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, strconv.FormatInt(b.ID, 10), event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", eventType, b.ID, err)
	}
}

func validateInterval(start, end string) error {
	startMin, err := timeutil.ParseClock(start)
	if err != nil {
		return err
	}
	endMin, err := timeutil.ParseClock(end)
	if err != nil {
		return err
	}
	if endMin <= startMin {
		return domain.ErrInvalidInterval
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
