//go:build integration

package gateway

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/repository"
	"github.com/Eursukkul/booking-microservice/booking-flow/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "reservation_gateway_test_db"),
	)

	var err error
	testDB, err = database.NewPostgresDB(dsn)
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	testDB.Exec("DROP TABLE IF EXISTS reservations")
	testDB.Exec("DROP TABLE IF EXISTS nightly_rates")
	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	code := m.Run()

	testDB.Exec("DROP TABLE IF EXISTS reservations")
	testDB.Exec("DROP TABLE IF EXISTS nightly_rates")

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM reservations")
	testDB.Exec("DELETE FROM nightly_rates")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newDBGateway() (ReservationGateway, repository.RateRepository) {
	rates := repository.NewRateRepository(testDB)
	// nil logger falls back to a no-op logger
	return NewDBReservationGateway(rates, repository.NewReservationRepository(testDB), nil), rates
}

func seedNight(t *testing.T, rates repository.RateRepository, roomTypeID int64, date string, amount int64) {
	t.Helper()
	require.NoError(t, rates.Upsert(context.Background(), &models.NightlyRate{
		RoomTypeID: roomTypeID,
		Date:       models.MustParseDate(date).Time(),
		Amount:     decimal.NewFromInt(amount),
	}))
}

func stay(roomTypeID int64, start, end string) models.CustomBookingInfo {
	return models.CustomBookingInfo{
		RoomTypeID: roomTypeID,
		Model: models.ReservationModel{
			Name:           "Sok Dara",
			Message:        "Late arrival",
			NumberOfGuests: 2,
			Start:          models.MustParseDate(start),
			End:            models.MustParseDate(end),
			Payment:        models.Payment{Amount: decimal.NewFromInt(220)},
			Email:          "guest@example.com",
			Phone:          "+85512345678",
		},
	}
}

func countReservations(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, testDB.Model(&models.Reservation{}).Count(&n).Error)
	return n
}

func TestDBReservation_CreateReservation_MissingNight(t *testing.T) {
	cleanTables()
	gw, rates := newDBGateway()
	seedNight(t, rates, 42, "2024-06-01", 100)
	seedNight(t, rates, 42, "2024-06-03", 100)

	_, err := gw.CreateReservation(context.Background(), stay(42, "2024-06-01", "2024-06-04"))

	assert.ErrorIs(t, err, ErrRatesUnavailable)
	assert.Equal(t, int64(0), countReservations(t))
}

func TestDBReservation_CreateReservation_OtherRoomTypeDoesNotCount(t *testing.T) {
	cleanTables()
	gw, rates := newDBGateway()
	seedNight(t, rates, 42, "2024-06-01", 100)
	seedNight(t, rates, 7, "2024-06-02", 100)

	_, err := gw.CreateReservation(context.Background(), stay(42, "2024-06-01", "2024-06-03"))

	assert.ErrorIs(t, err, ErrRatesUnavailable)
	assert.Equal(t, int64(0), countReservations(t))
}

func TestDBReservation_CreateReservation_Success(t *testing.T) {
	cleanTables()
	gw, rates := newDBGateway()
	seedNight(t, rates, 42, "2024-06-01", 100)
	seedNight(t, rates, 42, "2024-06-02", 100)

	result, err := gw.CreateReservation(context.Background(), stay(42, "2024-06-01", "2024-06-03"))

	require.NoError(t, err)
	require.NotZero(t, result.ReservationID)
	assert.Equal(t, int64(1), countReservations(t))

	details, err := gw.FetchReservationDetails(context.Background(), result.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, float64(result.ReservationID), details["id"])
	assert.Equal(t, float64(42), details["room_type_id"])
	assert.Equal(t, "Sok Dara", details["name"])
	assert.Equal(t, "Late arrival", details["message"])
	assert.Equal(t, float64(2), details["number_of_guests"])
	assert.Equal(t, "220", details["amount"])
	assert.Equal(t, "guest@example.com", details["email"])
	assert.Equal(t, "+85512345678", details["phone"])
}

// The checkout morning needs no rate: two nights are rated, checkout has none.
func TestDBReservation_CreateReservation_CheckoutNotANight(t *testing.T) {
	cleanTables()
	gw, rates := newDBGateway()
	seedNight(t, rates, 42, "2024-06-01", 100)
	seedNight(t, rates, 42, "2024-06-02", 100)

	_, err := gw.CreateReservation(context.Background(), stay(42, "2024-06-01", "2024-06-03"))
	require.NoError(t, err)

	// A rate on the checkout day does not make up for a missing night.
	cleanTables()
	seedNight(t, rates, 42, "2024-06-01", 100)
	seedNight(t, rates, 42, "2024-06-03", 100)

	_, err = gw.CreateReservation(context.Background(), stay(42, "2024-06-01", "2024-06-03"))
	assert.ErrorIs(t, err, ErrRatesUnavailable)
}

func TestDBReservation_FetchPrices_Inclusive(t *testing.T) {
	cleanTables()
	gw, rates := newDBGateway()
	seedNight(t, rates, 42, "2024-06-01", 100)
	seedNight(t, rates, 42, "2024-06-02", 110)
	seedNight(t, rates, 42, "2024-06-03", 120)

	prices, err := gw.FetchPrices(context.Background(), 42,
		models.MustParseDate("2024-06-01"), models.MustParseDate("2024-06-02"))

	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "2024-06-01", prices[0].Date.String())
	assert.True(t, decimal.NewFromInt(110).Equal(prices[1].Amount))
}

func TestDBReservation_FetchReservationDetails_NotFound(t *testing.T) {
	cleanTables()
	gw, _ := newDBGateway()

	_, err := gw.FetchReservationDetails(context.Background(), 123456)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}
