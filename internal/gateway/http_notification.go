package gateway

import (
	"context"
	"net/http"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"go.uber.org/zap"
)

type httpNotificationGateway struct {
	api *httpClient
}

// NewHTTPNotificationGateway posts templated mails to <baseURL>/mail/send.
func NewHTTPNotificationGateway(baseURL string, client *http.Client, logger *zap.Logger) NotificationGateway {
	return &httpNotificationGateway{api: newHTTPClient("email-api", baseURL, client, logger)}
}

func (g *httpNotificationGateway) Send(ctx context.Context, email models.EmailNotification) error {
	return g.api.do(ctx, "send email", http.MethodPost, "/mail/send", email, nil)
}
