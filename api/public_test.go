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
	"github.com/Domenick1991/courtbooking/internal/service/booking"
	"github.com/Domenick1991/courtbooking/internal/service/courts"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCourtUseCase is a mock implementation of courts.CourtUseCase
type MockCourtUseCase struct {
	mock.Mock
}

func (m *MockCourtUseCase) List(ctx context.Context, activeOnly bool) ([]domain.Court, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.Court), args.Error(1)
}

func (m *MockCourtUseCase) ActiveCourts(ctx context.Context) ([]domain.Court, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Court), args.Error(1)
}

func (m *MockCourtUseCase) Get(ctx context.Context, id int64) (*domain.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Court), args.Error(1)
}

func (m *MockCourtUseCase) Create(ctx context.Context, input courts.CourtInput) (*domain.Court, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Court), args.Error(1)
}

func (m *MockCourtUseCase) Update(ctx context.Context, id int64, input courts.CourtInput) (*domain.Court, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Court), args.Error(1)
}

func (m *MockCourtUseCase) UpdatePrice(ctx context.Context, id, priceCents int64) (*domain.Court, error) {
	args := m.Called(ctx, id, priceCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Court), args.Error(1)
}

func (m *MockCourtUseCase) GetConfig(ctx context.Context) (*domain.TimeSlotConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlotConfig), args.Error(1)
}

func (m *MockCourtUseCase) UpdateConfig(ctx context.Context, input courts.ConfigInput) (*domain.TimeSlotConfig, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlotConfig), args.Error(1)
}

func TestPublicHandler_slots_missingDate(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewPublicHandler(mockBookings, &MockCourtUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/public/slots", nil)

	handler.slots(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockBookings.AssertNotCalled(t, "AvailableSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublicHandler_slots_pastDate(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewPublicHandler(mockBookings, &MockCourtUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/public/slots?date=2020-01-01", nil)

	handler.slots(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockBookings.AssertNotCalled(t, "AvailableSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublicHandler_slots_ok(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewPublicHandler(mockBookings, &MockCourtUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	c.Request = httptest.NewRequest("GET", "/api/public/slots?date="+date, nil)

	result := &booking.SlotsResult{Date: date, Slots: []booking.Slot{}}
	mockBookings.On("AvailableSlots", c.Request.Context(), mock.Anything, (*int64)(nil)).Return(result, nil)

	handler.slots(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockBookings.AssertExpectations(t)
}

func TestPublicHandler_create_returnsCancellationCode(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewPublicHandler(mockBookings, &MockCourtUseCase{})

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
	c.Request = httptest.NewRequest("POST", "/api/public/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := testBooking()
	created.Origin = domain.BookingOriginPublic
	token := &domain.CancellationToken{BookingID: 1, Token: "A1B2C3D4"}
	mockBookings.On("CreatePublic", c.Request.Context(), mock.Anything).Return(created, token, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response publicBookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "A1B2C3D4", response.CancellationCode)
	assert.Equal(t, string(domain.BookingOriginPublic), response.Booking.Origin)
}

func TestPublicHandler_search_requiresNameOrPhone(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewPublicHandler(mockBookings, &MockCourtUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/public/bookings/search", nil)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockBookings.AssertNotCalled(t, "SearchCustomerBookings", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublicHandler_cancelByToken_tooLate(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewPublicHandler(mockBookings, &MockCourtUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(cancelByTokenRequest{Token: "A1B2C3D4"})
	c.Request = httptest.NewRequest("POST", "/api/public/bookings/cancel", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockBookings.On("CancelByToken", c.Request.Context(), "A1B2C3D4").Return(nil, domain.ErrTooLateToCancel)

	handler.cancelByToken(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicHandler_verify_unknownToken(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewPublicHandler(mockBookings, &MockCourtUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "token", Value: "NOPE"}}
	c.Request = httptest.NewRequest("GET", "/api/public/bookings/verify/NOPE", nil)

	mockBookings.On("Verify", c.Request.Context(), "NOPE").Return(nil, domain.ErrInvalidToken)

	handler.verify(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicHandler_listCourts(t *testing.T) {
	mockCourts := &MockCourtUseCase{}
	handler := NewPublicHandler(&MockBookingUseCase{}, mockCourts)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/public/courts", nil)

	active := []domain.Court{{ID: 1, Name: "Court 1", Type: domain.CourtTypeIndoor, PriceCents: 50000, IsActive: true}}
	mockCourts.On("ActiveCourts", c.Request.Context()).Return(active, nil)

	handler.listCourts(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []publicCourtResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, int64(50000), response[0].PriceCents)
}
