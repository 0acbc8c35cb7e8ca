package gateway

import (
	"context"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
)

const BookingConfirmedKey = "booking.confirmed"

// Publisher is satisfied by *rabbitmq.Publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type mqNotificationGateway struct {
	publisher Publisher
}

// NewMQNotificationGateway hands confirmation emails to a mailer worker
// through the message broker.
func NewMQNotificationGateway(publisher Publisher) NotificationGateway {
	return &mqNotificationGateway{publisher: publisher}
}

func (g *mqNotificationGateway) Send(ctx context.Context, email models.EmailNotification) error {
	return g.publisher.Publish(ctx, BookingConfirmedKey, email)
}
