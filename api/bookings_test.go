package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/repository"
	"github.com/Domenick1991/courtbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CreatePublic(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, *domain.CancellationToken, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.Get(1).(*domain.CancellationToken), args.Error(2)
}

func (m *MockBookingUseCase) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Calendar(ctx context.Context, dateFrom, dateTo *time.Time, courtID *int64) ([]domain.Booking, error) {
	args := m.Called(ctx, dateFrom, dateTo, courtID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Update(ctx context.Context, id int64, input booking.UpdateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelByToken(ctx context.Context, token string) (*domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelPublicByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Verify(ctx context.Context, token string) (*booking.VerifyResult, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.VerifyResult), args.Error(1)
}

func (m *MockBookingUseCase) Close(ctx context.Context, input booking.CloseBookingInput) (*domain.BookingClosure, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingClosure), args.Error(1)
}

func (m *MockBookingUseCase) Closure(ctx context.Context, bookingID int64) (*domain.BookingClosure, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingClosure), args.Error(1)
}

func (m *MockBookingUseCase) SearchCustomerBookings(ctx context.Context, name, phone string) ([]booking.CustomerBooking, error) {
	args := m.Called(ctx, name, phone)
	return args.Get(0).([]booking.CustomerBooking), args.Error(1)
}

func (m *MockBookingUseCase) AvailableSlots(ctx context.Context, date time.Time, courtID *int64) (*booking.SlotsResult, error) {
	args := m.Called(ctx, date, courtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.SlotsResult), args.Error(1)
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		CourtID:         1,
		CourtName:       "Court 1",
		CourtPriceCents: 50000,
		Date:            time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local),
		StartTime:       "10:00",
		EndTime:         "11:30",
		Status:          domain.BookingStatusReserved,
		CustomerName:    "Maria Lopez",
		CustomerPhone:   "600111222",
		Origin:          domain.BookingOriginAdmin,
	}
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{
		CourtID:       1,
		Date:          "2026-09-10",
		StartTime:     "10:00",
		EndTime:       "11:30",
		CustomerName:  "Maria Lopez",
		CustomerPhone: "600111222",
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", c.Request.Context(), mock.MatchedBy(func(input booking.CreateBookingInput) bool {
		return input.CourtID == 1 && input.StartTime == "10:00" && input.CustomerName == "Maria Lopez"
	})).Return(testBooking(), nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "2026-09-10", response.Date)
	assert.Equal(t, string(domain.BookingStatusReserved), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_slotTakenMapsToConflict(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{
		CourtID:       1,
		Date:          "2026-09-10",
		StartTime:     "10:00",
		EndTime:       "11:30",
		CustomerName:  "Maria Lopez",
		CustomerPhone: "600111222",
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", c.Request.Context(), mock.Anything).Return(nil, domain.ErrSlotTaken)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_create_invalidDate(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{
		CourtID:       1,
		Date:          "10/09/2026",
		StartTime:     "10:00",
		EndTime:       "11:30",
		CustomerName:  "Maria Lopez",
		CustomerPhone: "600111222",
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("POST", "/api/bookings/1/cancel", nil)

	cancelled := testBooking()
	cancelled.Status = domain.BookingStatusCancelled
	mockService.On("Cancel", c.Request.Context(), int64(1)).Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCancelled), response.Status)
}

func TestBookingHandler_get_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("GET", "/api/bookings/99", nil)

	mockService.On("Get", c.Request.Context(), int64(99)).Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_close(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	body, _ := json.Marshal(closeBookingRequest{CashAmountCents: 50000})
	c.Request = httptest.NewRequest("POST", "/api/bookings/1/close", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	closure := &domain.BookingClosure{ID: 1, BookingID: 1, BookingAmountCents: 50000, CashAmountCents: 50000, TotalAmountCents: 50000}
	mockService.On("Close", c.Request.Context(), mock.MatchedBy(func(input booking.CloseBookingInput) bool {
		return input.BookingID == 1 && input.CashAmountCents == 50000 && input.BookingAmountCents == nil
	})).Return(closure, nil)

	handler.close(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_list_withFilters(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/api/bookings?date=2026-09-10&court_id=2", nil)

	courtID := int64(2)
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)
	mockService.On("List", c.Request.Context(), repository.BookingFilter{CourtID: &courtID, Date: &date}).
		Return([]domain.Booking{*testBooking()}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
