package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidStay         = errors.New("reservation must cover at least one night")
	ErrRatesUnavailable    = errors.New("room type has no rate for every night of the stay")
	ErrReservationNotFound = errors.New("reservation not found")
)

type dbReservationGateway struct {
	rateRepo        repository.RateRepository
	reservationRepo repository.ReservationRepository
	logger          *zap.Logger
}

// NewDBReservationGateway serves prices and reservations straight from the
// reservation database.
func NewDBReservationGateway(rateRepo repository.RateRepository, reservationRepo repository.ReservationRepository, logger *zap.Logger) ReservationGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dbReservationGateway{
		rateRepo:        rateRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

func (g *dbReservationGateway) FetchPrices(ctx context.Context, roomTypeID int64, start, end models.Date) ([]models.Price, error) {
	rates, err := g.rateRepo.FindRange(ctx, roomTypeID, start.Time(), end.Time())
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	prices := make([]models.Price, len(rates))
	for i, r := range rates {
		prices[i] = models.Price{
			Date:   models.NewDate(r.Date.Year(), r.Date.Month(), r.Date.Day()),
			Amount: r.Amount,
		}
	}
	return prices, nil
}

func (g *dbReservationGateway) CreateReservation(ctx context.Context, payload models.CustomBookingInfo) (models.ReservationResult, error) {
	m := payload.Model
	nights := int(m.End.Time().Sub(m.Start.Time()).Hours() / 24)
	if m.Start.IsZero() || m.End.IsZero() || nights <= 0 {
		return models.ReservationResult{}, ErrInvalidStay
	}

	reservation := &models.Reservation{
		RoomTypeID:     payload.RoomTypeID,
		Name:           m.Name,
		Message:        m.Message,
		NumberOfGuests: m.NumberOfGuests,
		StartDate:      m.Start.Time(),
		EndDate:        m.End.Time(),
		Amount:         m.Payment.Amount,
		Email:          m.Email,
		Phone:          m.Phone,
	}

	err := g.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The checkout morning is not a booked night.
		lastNight := m.End.AddDays(-1)
		count, err := g.rateRepo.CountRange(ctx, tx, payload.RoomTypeID, m.Start.Time(), lastNight.Time())
		if err != nil {
			return err
		}
		if int(count) != nights {
			return ErrRatesUnavailable
		}
		return g.reservationRepo.Create(ctx, tx, reservation)
	})
	if err != nil {
		return models.ReservationResult{}, fmt.Errorf("create reservation: %w", err)
	}

	g.logger.Info("reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("room_type_id", reservation.RoomTypeID))
	return models.ReservationResult{ReservationID: reservation.ID}, nil
}

func (g *dbReservationGateway) FetchReservationDetails(ctx context.Context, reservationID int64) (models.ReservationDetails, error) {
	reservation, err := g.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("fetch reservation: %w", err)
	}

	raw, err := json.Marshal(reservation)
	if err != nil {
		return nil, fmt.Errorf("fetch reservation: %w", err)
	}
	details := models.ReservationDetails{}
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, fmt.Errorf("fetch reservation: %w", err)
	}
	return details, nil
}
