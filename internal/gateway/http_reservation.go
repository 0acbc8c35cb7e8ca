package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"go.uber.org/zap"
)

type httpReservationGateway struct {
	api *httpClient
}

// NewHTTPReservationGateway talks to the reservation API at baseURL.
func NewHTTPReservationGateway(baseURL string, client *http.Client, logger *zap.Logger) ReservationGateway {
	return &httpReservationGateway{api: newHTTPClient("reservation-api", baseURL, client, logger)}
}

func (g *httpReservationGateway) FetchPrices(ctx context.Context, roomTypeID int64, start, end models.Date) ([]models.Price, error) {
	q := url.Values{}
	q.Set("startDate", start.String())
	q.Set("endDate", end.String())
	path := fmt.Sprintf("/roomtypes/%d/prices?%s", roomTypeID, q.Encode())

	var prices []models.Price
	if err := g.api.do(ctx, "fetch prices", http.MethodGet, path, nil, &prices); err != nil {
		return nil, err
	}
	if prices == nil {
		prices = []models.Price{}
	}
	return prices, nil
}

func (g *httpReservationGateway) CreateReservation(ctx context.Context, payload models.CustomBookingInfo) (models.ReservationResult, error) {
	path := fmt.Sprintf("/reservations/roomtype/%d", payload.RoomTypeID)

	var result models.ReservationResult
	if err := g.api.do(ctx, "create reservation", http.MethodPost, path, payload.Model, &result); err != nil {
		return models.ReservationResult{}, err
	}
	return result, nil
}

func (g *httpReservationGateway) FetchReservationDetails(ctx context.Context, reservationID int64) (models.ReservationDetails, error) {
	path := fmt.Sprintf("/reservations/%d", reservationID)

	details := models.ReservationDetails{}
	if err := g.api.do(ctx, "fetch reservation", http.MethodGet, path, nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}
