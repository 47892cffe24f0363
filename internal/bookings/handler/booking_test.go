package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dinebook/internal/bookings/service"
	apperrors "dinebook/pkg/errors"
	"dinebook/pkg/logger"
	"dinebook/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBookingService struct {
	createFunc  func(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Booking, error)
	listFunc    func(ctx context.Context, day *time.Time) ([]*model.Booking, error)
	cancelFunc  func(ctx context.Context, id string) error
}

func (m *mockBookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingService) List(ctx context.Context, day *time.Time) ([]*model.Booking, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, day)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return nil
}

func newRouter(svc service.BookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCreate_Success(t *testing.T) {
	var received *model.CreateBookingRequest
	svc := &mockBookingService{
		createFunc: func(_ context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error) {
			received = req
			return &model.BookingResult{
				Message:         service.MsgCreated,
				VoiceSuggestion: "The weather looks great on that day! Would you prefer outdoor seating?",
				Booking:         &model.Booking{BookingID: "b-1", CustomerName: req.CustomerName, SeatingPreference: "outdoor"},
			}, nil
		},
	}

	body := []byte(`{"customerName":"Asha","numberOfGuests":"2","bookingDate":"2025-12-06","bookingTime":"20:00","cuisinePreference":"Indian"}`)
	w := serve(newRouter(svc), http.MethodPost, "/api/bookings", body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, received)
	assert.Equal(t, model.GuestCount(2), received.NumberOfGuests)

	out := decode(t, w)
	assert.Equal(t, "Booking created successfully", out["message"])
	assert.Contains(t, out["voiceSuggestion"], "looks great")
	booking := out["booking"].(map[string]any)
	assert.Equal(t, "b-1", booking["bookingId"])
	assert.Equal(t, "outdoor", booking["seatingPreference"])
	assert.NotContains(t, booking, "SlotKey")
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "malformed json",
			body:       `{"customerName":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request body",
		},
		{
			name:       "non numeric guests",
			body:       `{"numberOfGuests":"a few"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request body",
		},
		{
			name:       "validation from service",
			body:       `{}`,
			err:        apperrors.Validation(service.MsgRequiredFields, nil),
			wantStatus: http.StatusBadRequest,
			wantMsg:    service.MsgRequiredFields,
		},
		{
			name:       "slot conflict",
			body:       `{}`,
			err:        apperrors.New(apperrors.CodeConflict, service.MsgSlotTaken, http.StatusBadRequest),
			wantStatus: http.StatusBadRequest,
			wantMsg:    service.MsgSlotTaken,
		},
		{
			name:       "unexpected failure",
			body:       `{}`,
			err:        apperrors.Internal(service.MsgCreateFailed, errors.New("mongo: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    service.MsgCreateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFunc: func(context.Context, *model.CreateBookingRequest) (*model.BookingResult, error) {
					return nil, tt.err
				},
			}

			w := serve(newRouter(svc), http.MethodPost, "/api/bookings", []byte(tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			out := decode(t, w)
			assert.Equal(t, tt.wantMsg, out["message"])
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestList_DateFilter(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantDay *time.Time
	}{
		{"no filter", "", nil},
		{"iso date", "?date=2025-12-06", ptr(time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC))},
		{"invalid date ignored", "?date=not-a-date", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDay *time.Time
			called := false
			svc := &mockBookingService{
				listFunc: func(_ context.Context, day *time.Time) ([]*model.Booking, error) {
					called = true
					gotDay = day
					return []*model.Booking{{BookingID: "b-1"}}, nil
				},
			}

			w := serve(newRouter(svc), http.MethodGet, "/api/bookings"+tt.query, nil)

			require.Equal(t, http.StatusOK, w.Code)
			require.True(t, called)
			if tt.wantDay == nil {
				assert.Nil(t, gotDay)
			} else {
				require.NotNil(t, gotDay)
				assert.True(t, tt.wantDay.Equal(*gotDay))
			}

			out := decode(t, w)
			assert.Len(t, out["bookings"], 1)
		})
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	w := serve(newRouter(&mockBookingService{}), http.MethodGet, "/api/bookings", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookings":[]}`, w.Body.String())
}

func TestGetByID(t *testing.T) {
	svc := &mockBookingService{
		getByIDFunc: func(_ context.Context, id string) (*model.Booking, error) {
			if id == "b-1" {
				return &model.Booking{BookingID: "b-1", CustomerName: "Asha"}, nil
			}
			return nil, apperrors.NotFound("Booking")
		},
	}
	router := newRouter(svc)

	w := serve(router, http.MethodGet, "/api/bookings/b-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	booking := decode(t, w)["booking"].(map[string]any)
	assert.Equal(t, "Asha", booking["customerName"])

	w = serve(router, http.MethodGet, "/api/bookings/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Booking not found", decode(t, w)["message"])
}

func TestCancel(t *testing.T) {
	var cancelled string
	svc := &mockBookingService{
		cancelFunc: func(_ context.Context, id string) error {
			if id == "missing" {
				return apperrors.NotFound("Booking")
			}
			cancelled = id
			return nil
		},
	}
	router := newRouter(svc)

	w := serve(router, http.MethodDelete, "/api/bookings/b-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b-1", cancelled)
	assert.Equal(t, "Booking cancelled successfully", decode(t, w)["message"])

	w = serve(router, http.MethodDelete, "/api/bookings/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Booking not found", decode(t, w)["message"])
}

func TestHealthHandler(t *testing.T) {
	router := httprouter.New()
	NewHealthHandler(nil, logger.Discard()).RegisterRoutes(router)

	w := serve(router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, RootMessage, decode(t, w)["message"])

	w = serve(router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "memory", decode(t, w)["database"])

	failing := httprouter.New()
	NewHealthHandler(PingerFunc(func(context.Context) error { return errors.New("down") }), logger.Discard()).RegisterRoutes(failing)
	w = serve(failing, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func ptr[T any](v T) *T { return &v }
