package dto

import (
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/pricing"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/service"
)

type SessionResponse struct {
	SessionID string              `json:"session_id"`
	Steps     []models.Step       `json:"steps"`
	State     models.BookingState `json:"state"`
	Pricing   pricing.Summary     `json:"pricing"`
}

type StepResponse struct {
	CurrentStep models.Step `json:"current_step"`
}

type ValidationResponse struct {
	Valid bool `json:"valid"`
}

type ReservationResponse struct {
	ReservationID int64                     `json:"reservation_id"`
	Details       models.ReservationDetails `json:"details,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToSessionResponse(id string, svc service.BookingService) SessionResponse {
	state := svc.State()
	return SessionResponse{
		SessionID: id,
		Steps:     svc.Steps(),
		State:     state,
		Pricing:   pricing.Summarize(state.BookingInfo.Prices, false, false),
	}
}
