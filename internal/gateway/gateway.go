// Package gateway holds the reservation and notification backends the
// booking flow calls but does not own.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
)

// ErrUpstream marks a non-2xx answer from a remote backend.
var ErrUpstream = errors.New("upstream service error")

type ReservationGateway interface {
	FetchPrices(ctx context.Context, roomTypeID int64, start, end models.Date) ([]models.Price, error)
	CreateReservation(ctx context.Context, payload models.CustomBookingInfo) (models.ReservationResult, error)
	FetchReservationDetails(ctx context.Context, reservationID int64) (models.ReservationDetails, error)
}

type NotificationGateway interface {
	Send(ctx context.Context, email models.EmailNotification) error
}

// StatusError describes a remote answer outside 2xx. It matches ErrUpstream.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstream
}
