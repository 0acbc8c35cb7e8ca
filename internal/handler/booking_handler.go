package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/dto"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/gateway"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/pricing"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/sony/gobreaker"
)

type BookingHandler struct {
	sessions service.SessionService
}

func NewBookingHandler(sessions service.SessionService) *BookingHandler {
	return &BookingHandler{sessions: sessions}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/booking/sessions")
	g.POST("", h.OpenSession)
	g.GET("/:id", h.GetSession)
	g.DELETE("/:id", h.CloseSession)

	g.POST("/:id/start", h.StartBooking)
	g.POST("/:id/cancel", h.CancelBooking)
	g.PUT("/:id/step", h.SetStep)
	g.PATCH("/:id/dialog", h.UpdateDialog)
	g.PATCH("/:id/booking-info", h.UpdateBookingInfo)
	g.DELETE("/:id/date-two", h.ClearDateTwo)
	g.DELETE("/:id/prices", h.ClearPrices)

	g.POST("/:id/prices", h.FetchPrices)
	g.GET("/:id/pricing", h.GetPricing)
	g.POST("/:id/validate", h.Validate)
	g.POST("/:id/reservation", h.ReserveRoom)
	g.GET("/:id/reservation", h.GetReservation)
	g.GET("/:id/payload/reservation", h.GetReservationPayload)
	g.GET("/:id/payload/email", h.GetEmailPayload)
	g.POST("/:id/notification", h.SendNotification)
}

func (h *BookingHandler) session(c echo.Context) (service.BookingService, error) {
	svc, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return svc, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// toHTTPError maps flow and backend errors to responses. Backend failures
// without a more specific match are reported as 502.
func toHTTPError(err error) *echo.HTTPError {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrReservationFailed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrNoCurrentUser):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUnknownStep):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, gateway.ErrReservationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
}

func (h *BookingHandler) OpenSession(c echo.Context) error {
	id, svc := h.sessions.Open()
	return c.JSON(http.StatusCreated, dto.ToSessionResponse(id, svc))
}

func (h *BookingHandler) GetSession(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToSessionResponse(c.Param("id"), svc))
}

func (h *BookingHandler) CloseSession(c echo.Context) error {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) StartBooking(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	var req dto.StartBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc.StartBooking(req.Resort, req.ReturnURL)
	return c.JSON(http.StatusOK, dto.StepResponse{CurrentStep: svc.CurrentStep()})
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	svc.CancelBooking()
	return c.JSON(http.StatusOK, dto.ToSessionResponse(c.Param("id"), svc))
}

func (h *BookingHandler) SetStep(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	var req dto.SetStepRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := svc.SetStep(models.StepID(*req.ID)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.StepResponse{CurrentStep: svc.CurrentStep()})
}

func (h *BookingHandler) UpdateDialog(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	var req dto.UpdateDialogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	dialog := svc.UpdateDialog(models.DialogPatch{IsOpen: req.IsOpen})
	return c.JSON(http.StatusOK, dialog)
}

func (h *BookingHandler) UpdateBookingInfo(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBookingInfoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	// Dates are parsed up front so a bad value leaves the session untouched.
	var dateOne, dateTwo models.Date
	if req.DateOne != nil {
		if dateOne, err = models.ParseDate(*req.DateOne); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if req.DateTwo != nil {
		if dateTwo, err = models.ParseDate(*req.DateTwo); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	if req.Guests != nil {
		svc.SetGuests(*req.Guests)
	}
	if req.DateOne != nil {
		svc.SetDateOne(dateOne)
	}
	if req.DateTwo != nil {
		svc.SetDateTwo(dateTwo)
	}
	if req.Message != nil {
		svc.SetMessage(*req.Message)
	}
	if req.Name != nil {
		svc.SetName(*req.Name)
	}
	if req.Email != nil {
		svc.SetEmail(*req.Email)
	}
	if req.PhoneNumber != nil {
		svc.SetPhoneNumber(*req.PhoneNumber)
	}
	if req.PhoneCountry != nil {
		svc.SetPhoneCountry(*req.PhoneCountry)
	}
	if req.PayWith != nil {
		svc.SetPayWith(*req.PayWith)
	}
	if req.FullName != nil {
		svc.SetFullName(*req.FullName)
	}
	if req.AddressLine != nil {
		svc.SetAddressLine(*req.AddressLine)
	}
	if req.AddressZip != nil {
		svc.SetAddressZip(*req.AddressZip)
	}
	if req.AddressCity != nil {
		svc.SetAddressCity(*req.AddressCity)
	}
	if req.AddressState != nil {
		svc.SetAddressState(*req.AddressState)
	}
	if req.RoomType != nil {
		svc.SetRoomType(*req.RoomType)
	}
	if req.ReturnURL != nil {
		svc.SetReturnURL(*req.ReturnURL)
	}
	if req.RoomDescriptionHTML != nil {
		svc.SetRoomDescriptionHTML(*req.RoomDescriptionHTML)
	}
	if req.IsPaymentLoading != nil {
		svc.SetPaymentLoading(*req.IsPaymentLoading)
	}
	if req.PaymentError != nil {
		svc.SetPaymentError(*req.PaymentError)
	}

	return c.JSON(http.StatusOK, svc.BookingInfo())
}

func (h *BookingHandler) ClearDateTwo(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	svc.ClearDateTwo()
	return c.JSON(http.StatusOK, svc.BookingInfo())
}

func (h *BookingHandler) ClearPrices(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	svc.ClearPrices()
	return c.JSON(http.StatusOK, svc.BookingInfo())
}

func (h *BookingHandler) FetchPrices(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	var req dto.FetchPricesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	dateOne, err := models.ParseDate(req.DateOne)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dateTwo, err := models.ParseDate(req.DateTwo)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := svc.GetPrices(c.Request().Context(), req.RoomTypeID, dateOne, dateTwo); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, pricing.Summarize(svc.BookingInfo().Prices, false, false))
}

func (h *BookingHandler) GetPricing(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	rounded, _ := strconv.ParseBool(c.QueryParam("rounded"))
	formattedDate, _ := strconv.ParseBool(c.QueryParam("formatted_date"))

	return c.JSON(http.StatusOK, pricing.Summarize(svc.BookingInfo().Prices, rounded, formattedDate))
}

func (h *BookingHandler) Validate(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	valid, err := svc.EvaluateValidation()
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ValidationResponse{Valid: valid})
}

func (h *BookingHandler) ReserveRoom(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	if err := svc.ReserveRoom(c.Request().Context()); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ReservationResponse{ReservationID: svc.ReservationID()})
}

// GetReservation loads the reservation given by ?reservation_id, or the
// session's own reservation when the parameter is absent.
func (h *BookingHandler) GetReservation(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	reservationID := svc.ReservationID()
	if raw := c.QueryParam("reservation_id"); raw != "" {
		reservationID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
		}
	}
	if reservationID == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no reservation in this session")
	}

	if err := svc.GetReservationDetails(c.Request().Context(), reservationID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ReservationResponse{
		ReservationID: reservationID,
		Details:       svc.State().ReservationDetails,
	})
}

func (h *BookingHandler) GetReservationPayload(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	payload, err := svc.CustomBookingInfo(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, payload)
}

func (h *BookingHandler) GetEmailPayload(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	payload, err := svc.BookingInfoForEmail(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, payload)
}

func (h *BookingHandler) SendNotification(c echo.Context) error {
	svc, err := h.session(c)
	if err != nil {
		return err
	}

	if err := svc.SendEmailNotification(c.Request().Context()); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusAccepted)
}
