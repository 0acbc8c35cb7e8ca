package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var errInvalidRate = errors.New("rate message needs room_type_id, date and a non-negative amount")

// RateMessage is one nightly rate published by the property management side.
type RateMessage struct {
	RoomTypeID int64           `json:"room_type_id"`
	Date       models.Date     `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
}

func (m RateMessage) validate() error {
	if m.RoomTypeID <= 0 || m.Date.IsZero() || m.Amount.IsNegative() {
		return errInvalidRate
	}
	return nil
}

// RateConsumer keeps the nightly_rates table in sync with rate updates.
type RateConsumer struct {
	rates  repository.RateRepository
	logger *zap.Logger
}

func NewRateConsumer(rates repository.RateRepository, logger *zap.Logger) *RateConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateConsumer{rates: rates, logger: logger}
}

// Start handles messages until msgs is closed.
func (rc *RateConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			rc.handleMessage(ctx, msg)
		}
		rc.logger.Info("rate channel closed, stopping consumer")
	}()
}

func (rc *RateConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var rate RateMessage
	if err := json.Unmarshal(msg.Body, &rate); err != nil {
		rc.logger.Warn("failed to unmarshal rate", zap.Error(err))
		msg.Nack(false, false)
		return
	}
	if err := rate.validate(); err != nil {
		rc.logger.Warn("dropping rate", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
		msg.Nack(false, false)
		return
	}

	row := &models.NightlyRate{
		RoomTypeID: rate.RoomTypeID,
		Date:       rate.Date.Time(),
		Amount:     rate.Amount,
	}
	if err := rc.rates.Upsert(ctx, row); err != nil {
		rc.logger.Error("failed to upsert rate",
			zap.Int64("room_type_id", rate.RoomTypeID),
			zap.String("date", rate.Date.String()),
			zap.Error(err))
		msg.Nack(false, true) // requeue
		return
	}

	rc.logger.Debug("synced rate",
		zap.Int64("room_type_id", rate.RoomTypeID),
		zap.String("date", rate.Date.String()),
		zap.String("amount", rate.Amount.String()))
	msg.Ack(false)
}
