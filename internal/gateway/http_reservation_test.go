package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPReservation_FetchPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/roomtypes/42/prices", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2024-06-02", r.URL.Query().Get("endDate"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date":"2024-06-01","amount":100.5},{"date":"2024-06-02","amount":"99.5"}]`))
	}))
	defer srv.Close()

	gw := NewHTTPReservationGateway(srv.URL+"/", srv.Client(), zap.NewNop())
	prices, err := gw.FetchPrices(context.Background(), 42,
		models.MustParseDate("2024-06-01"), models.MustParseDate("2024-06-02"))

	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "2024-06-01", prices[0].Date.String())
	assert.True(t, decimal.RequireFromString("100.5").Equal(prices[0].Amount))
	assert.True(t, decimal.RequireFromString("99.5").Equal(prices[1].Amount))
}

func TestHTTPReservation_FetchPricesNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	gw := NewHTTPReservationGateway(srv.URL, srv.Client(), zap.NewNop())
	prices, err := gw.FetchPrices(context.Background(), 1,
		models.MustParseDate("2024-06-01"), models.MustParseDate("2024-06-01"))

	require.NoError(t, err)
	assert.NotNil(t, prices)
	assert.Empty(t, prices)
}

func TestHTTPReservation_CreateReservation(t *testing.T) {
	var body models.ReservationModel
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reservations/roomtype/42", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"reservationId":77}`))
	}))
	defer srv.Close()

	gw := NewHTTPReservationGateway(srv.URL, srv.Client(), zap.NewNop())
	result, err := gw.CreateReservation(context.Background(), models.CustomBookingInfo{
		RoomTypeID: 42,
		Model: models.ReservationModel{
			Name:           "Sok Dara",
			NumberOfGuests: 2,
			Start:          models.MustParseDate("2024-06-01"),
			End:            models.MustParseDate("2024-06-03"),
			Payment:        models.Payment{Amount: decimal.NewFromInt(220)},
			Email:          "guest@example.com",
			Phone:          "+85512345678",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), result.ReservationID)
	assert.Equal(t, "Sok Dara", body.Name)
	assert.Equal(t, "2024-06-03", body.End.String())
	assert.True(t, decimal.NewFromInt(220).Equal(body.Payment.Amount))
}

func TestHTTPReservation_CreateReservationRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "room no longer available", http.StatusConflict)
	}))
	defer srv.Close()

	gw := NewHTTPReservationGateway(srv.URL, srv.Client(), zap.NewNop())
	_, err := gw.CreateReservation(context.Background(), models.CustomBookingInfo{RoomTypeID: 1})

	assert.ErrorIs(t, err, ErrUpstream)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.Status)
	assert.Equal(t, "room no longer available", se.Body)
	assert.Equal(t, "create reservation", se.Op)
}

func TestHTTPReservation_FetchReservationDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reservations/77", r.URL.Path)
		w.Write([]byte(`{"id":77,"status":"confirmed","room":{"name":"Deluxe"}}`))
	}))
	defer srv.Close()

	gw := NewHTTPReservationGateway(srv.URL, srv.Client(), zap.NewNop())
	details, err := gw.FetchReservationDetails(context.Background(), 77)

	require.NoError(t, err)
	assert.Equal(t, "confirmed", details["status"])
	assert.Equal(t, float64(77), details["id"])
	assert.Equal(t, map[string]any{"name": "Deluxe"}, details["room"])
}

func TestHTTPReservation_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	gw := NewHTTPReservationGateway(srv.URL, srv.Client(), zap.NewNop())
	_, err := gw.FetchReservationDetails(context.Background(), 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "decode response")
}

func TestHTTPReservation_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gw := NewHTTPReservationGateway(url, nil, zap.NewNop())
	_, err := gw.FetchPrices(context.Background(), 1,
		models.MustParseDate("2024-06-01"), models.MustParseDate("2024-06-01"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch prices")
}

func TestHTTPReservation_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := NewHTTPReservationGateway(srv.URL, srv.Client(), zap.NewNop())
	for i := 0; i < 10; i++ {
		_, _ = gw.FetchReservationDetails(context.Background(), 1)
	}

	assert.Less(t, calls, 10)
}

func TestHTTPReservation_NilLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gw := NewHTTPReservationGateway(srv.URL, srv.Client(), nil)

	// enough failures to log each one and trip the breaker
	for i := 0; i < 8; i++ {
		assert.NotPanics(t, func() {
			_, err := gw.FetchReservationDetails(context.Background(), 1)
			assert.Error(t, err)
		})
	}
}
