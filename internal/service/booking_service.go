package service

import (
	"context"
	"sync"
	"time"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/gateway"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultEmailSubject    = "Thank You!"
	DefaultEmailTemplateID = "d-6fcd1e4a16504ba4a888e85184574101"
)

// UserProvider looks up the authenticated user of the request.
type UserProvider interface {
	CurrentUser(ctx context.Context) (models.User, error)
}

// DialogSync mirrors the dialog state onto the page chrome. It is called
// synchronously with every dialog change.
type DialogSync interface {
	SetDialogOpen(isOpen bool)
}

type DialogSyncFunc func(isOpen bool)

func (f DialogSyncFunc) SetDialogOpen(isOpen bool) { f(isOpen) }

type EmailSettings struct {
	BCC        string
	TemplateID string
	Subject    string
}

type Dependencies struct {
	Reservations  gateway.ReservationGateway
	Notifications gateway.NotificationGateway
	Users         UserProvider
	DialogSync    DialogSync
	Email         EmailSettings
	Logger        *zap.Logger
	Now           func() time.Time

	// SessionIdleTTL only applies to SessionService.
	SessionIdleTTL time.Duration
}

func (d Dependencies) withDefaults() Dependencies {
	if d.DialogSync == nil {
		d.DialogSync = DialogSyncFunc(func(bool) {})
	}
	if d.Email.Subject == "" {
		d.Email.Subject = DefaultEmailSubject
	}
	if d.Email.TemplateID == "" {
		d.Email.TemplateID = DefaultEmailTemplateID
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.SessionIdleTTL <= 0 {
		d.SessionIdleTTL = DefaultSessionIdleTTL
	}
	return d
}

type BookingService interface {
	// Read accessors. Every value returned is a copy.
	State() models.BookingState
	CurrentStep() models.Step
	Steps() []models.Step
	Dialog() models.Dialog
	BookingInfo() models.BookingInfo
	ReservationID() int64
	RoomSubtotal() decimal.Decimal
	VAT() decimal.Decimal
	Total(includeVAT bool) decimal.Decimal
	Prices(rounded, formattedDate bool) []models.FormattedPrice
	CustomBookingInfo(ctx context.Context) (models.CustomBookingInfo, error)
	BookingInfoForEmail(ctx context.Context) (models.EmailBookingInfo, error)

	// Step control.
	StartBooking(resort models.Resort, returnURL string)
	SetStep(id models.StepID) error
	Reset()
	CancelBooking()

	UpdateDialog(patch models.DialogPatch) models.Dialog

	// Single-field setters.
	SetGuests(guests models.Guests)
	SetDateOne(date models.Date)
	SetDateTwo(date models.Date)
	ClearDateTwo()
	SetPrices(prices []models.Price)
	ClearPrices()
	SetMessage(message string)
	SetName(name string)
	SetEmail(email string)
	SetPhoneNumber(phoneNumber string)
	SetPhoneCountry(country models.Country)
	SetPayWith(payWith string)
	SetFullName(fullName string)
	SetAddressLine(line string)
	SetAddressZip(zip string)
	SetAddressCity(city string)
	SetAddressState(state string)
	SetRoomType(roomType models.RoomType)
	SetReturnURL(returnURL string)
	SetResort(resort models.Resort)
	SetReservationID(id int64)
	SetReservationDetails(details models.ReservationDetails)
	SetRoomDescriptionHTML(html string)
	SetPaymentLoading(loading bool)
	SetPaymentError(message string)

	EvaluateValidation() (bool, error)

	// Backend calls. Nothing is committed unless the call succeeds.
	GetPrices(ctx context.Context, roomTypeID int64, dateOne, dateTwo models.Date) error
	ReserveRoom(ctx context.Context) error
	GetReservationDetails(ctx context.Context, reservationID int64) error
	SendEmailNotification(ctx context.Context) error
}

type bookingService struct {
	mu    sync.Mutex
	state models.BookingState
	deps  Dependencies
}

func NewBookingService(deps Dependencies) BookingService {
	return &bookingService{
		state: models.DefaultBookingState(),
		deps:  deps.withDefaults(),
	}
}

// update runs fn with the state locked.
func (s *bookingService) update(fn func(st *models.BookingState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// snapshot returns a deep copy of the state.
func (s *bookingService) snapshot() models.BookingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *bookingService) prices() []models.Price {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.ClonePrices(s.state.BookingInfo.Prices)
}

func (s *bookingService) State() models.BookingState { return s.snapshot() }

func (s *bookingService) CurrentStep() models.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentStep
}

func (s *bookingService) Steps() []models.Step { return models.Steps() }

func (s *bookingService) Dialog() models.Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Dialog
}

func (s *bookingService) BookingInfo() models.BookingInfo { return s.snapshot().BookingInfo }

func (s *bookingService) ReservationID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ReservationID
}

func (s *bookingService) RoomSubtotal() decimal.Decimal { return pricing.RoomSubtotal(s.prices()) }

func (s *bookingService) VAT() decimal.Decimal { return pricing.VAT(s.prices()) }

func (s *bookingService) Total(includeVAT bool) decimal.Decimal {
	return pricing.Total(s.prices(), includeVAT)
}

func (s *bookingService) Prices(rounded, formattedDate bool) []models.FormattedPrice {
	return pricing.FormattedPrices(s.prices(), rounded, formattedDate)
}

func (s *bookingService) currentUser(ctx context.Context) (models.User, error) {
	if s.deps.Users == nil {
		return models.User{}, ErrNoCurrentUser
	}
	return s.deps.Users.CurrentUser(ctx)
}

func (s *bookingService) CustomBookingInfo(ctx context.Context) (models.CustomBookingInfo, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return models.CustomBookingInfo{}, err
	}
	return customBookingInfo(s.BookingInfo(), user), nil
}

func customBookingInfo(info models.BookingInfo, user models.User) models.CustomBookingInfo {
	return models.CustomBookingInfo{
		RoomTypeID: info.RoomType.ID,
		Model: models.ReservationModel{
			Name:           info.FullName,
			Message:        info.Message,
			NumberOfGuests: info.Guests.Total,
			Start:          info.DateOne,
			End:            info.CheckOut,
			Payment:        models.Payment{Amount: pricing.Total(info.Prices, true)},
			Email:          user.UserName,
			Phone:          "+" + info.PhoneCountry.CallingCode() + info.PhoneNumber,
		},
	}
}

func (s *bookingService) BookingInfoForEmail(ctx context.Context) (models.EmailBookingInfo, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return models.EmailBookingInfo{}, err
	}
	return bookingInfoForEmail(s.BookingInfo(), user), nil
}

func bookingInfoForEmail(info models.BookingInfo, user models.User) models.EmailBookingInfo {
	return models.EmailBookingInfo{
		Name:                info.FullName,
		Message:             info.Message,
		NumberOfGuests:      info.Guests.Total,
		CheckIn:             info.DateOne.Display(),
		CheckOut:            info.CheckOut.Display(),
		Email:               user.UserName,
		PhoneCountry:        info.PhoneCountry.Name,
		Phone:               "+(" + info.PhoneCountry.CallingCode() + ")" + info.PhoneNumber,
		Guests:              info.Guests,
		Resort:              info.Resort,
		RoomDescriptionHTML: info.RoomDescriptionHTML,
		Prices:              pricing.FormattedPrices(info.Prices, true, true),
		VAT:                 pricing.Money(pricing.VAT(info.Prices)),
		Amount:              pricing.Money(pricing.Total(info.Prices, true)),
	}
}

// StartBooking is the only entry into the flow. It jumps straight to
// ConfirmDates whatever the current step is.
func (s *bookingService) StartBooking(resort models.Resort, returnURL string) {
	s.update(func(st *models.BookingState) {
		st.BookingInfo.Resort = resort.Clone()
		st.BookingInfo.ReturnURL = returnURL
		st.CurrentStep, _ = models.LookupStep(models.StepConfirmDates)
	})
	s.deps.Logger.Debug("booking started", zap.String("return_url", returnURL))
}

// SetStep moves to any step of the catalog. Ordering is left to the caller.
func (s *bookingService) SetStep(id models.StepID) error {
	step, err := models.LookupStep(id)
	if err != nil {
		return ErrUnknownStep
	}
	s.update(func(st *models.BookingState) { st.CurrentStep = step })
	return nil
}

// Reset puts the whole state back to the defaults, step included.
func (s *bookingService) Reset() {
	s.update(func(st *models.BookingState) { *st = models.DefaultBookingState() })
}

func (s *bookingService) CancelBooking() {
	s.Reset()
	s.deps.Logger.Debug("booking cancelled")
}

func (s *bookingService) UpdateDialog(patch models.DialogPatch) models.Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	dialog := s.state.Dialog
	if patch.IsOpen != nil {
		dialog.IsOpen = *patch.IsOpen
	}
	s.deps.DialogSync.SetDialogOpen(dialog.IsOpen)
	s.state.Dialog = dialog
	return dialog
}

func (s *bookingService) SetGuests(guests models.Guests) {
	s.update(func(st *models.BookingState) { st.BookingInfo.Guests = guests })
}

func (s *bookingService) SetDateOne(date models.Date) {
	s.update(func(st *models.BookingState) { st.BookingInfo.DateOne = date })
}

// SetDateTwo also derives CheckOut, the morning after the last night.
func (s *bookingService) SetDateTwo(date models.Date) {
	s.update(func(st *models.BookingState) {
		st.BookingInfo.DateTwo = date
		st.BookingInfo.CheckOut = date.AddDays(1)
	})
}

func (s *bookingService) ClearDateTwo() { s.SetDateTwo(models.Date{}) }

func (s *bookingService) SetPrices(prices []models.Price) {
	prices = models.ClonePrices(prices)
	if prices == nil {
		prices = []models.Price{}
	}
	s.update(func(st *models.BookingState) { st.BookingInfo.Prices = prices })
}

func (s *bookingService) ClearPrices() { s.SetPrices(nil) }

func (s *bookingService) SetMessage(message string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.Message = message })
}

func (s *bookingService) SetName(name string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.Name = name })
}

func (s *bookingService) SetEmail(email string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.Email = email })
}

func (s *bookingService) SetPhoneNumber(phoneNumber string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.PhoneNumber = phoneNumber })
}

func (s *bookingService) SetPhoneCountry(country models.Country) {
	country = country.Clone()
	s.update(func(st *models.BookingState) { st.BookingInfo.PhoneCountry = country })
}

func (s *bookingService) SetPayWith(payWith string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.PayWith = payWith })
}

func (s *bookingService) SetFullName(fullName string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.FullName = fullName })
}

func (s *bookingService) SetAddressLine(line string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.AddressLine = line })
}

func (s *bookingService) SetAddressZip(zip string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.AddressZip = zip })
}

func (s *bookingService) SetAddressCity(city string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.AddressCity = city })
}

func (s *bookingService) SetAddressState(state string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.AddressState = state })
}

func (s *bookingService) SetRoomType(roomType models.RoomType) {
	roomType = roomType.Clone()
	s.update(func(st *models.BookingState) { st.BookingInfo.RoomType = roomType })
}

func (s *bookingService) SetReturnURL(returnURL string) {
	s.update(func(st *models.BookingState) { st.BookingInfo.ReturnURL = returnURL })
}

func (s *bookingService) SetResort(resort models.Resort) {
	resort = resort.Clone()
	s.update(func(st *models.BookingState) { st.BookingInfo.Resort = resort })
}

func (s *bookingService) SetReservationID(id int64) {
	s.update(func(st *models.BookingState) { st.ReservationID = id })
}

func (s *bookingService) SetReservationDetails(details models.ReservationDetails) {
	details = details.Clone()
	s.update(func(st *models.BookingState) { st.ReservationDetails = details })
}

// SetRoomDescriptionHTML keeps only the English segment of the description.
func (s *bookingService) SetRoomDescriptionHTML(html string) {
	english := models.KeepLanguage("en", html)
	s.update(func(st *models.BookingState) { st.BookingInfo.RoomDescriptionHTML = english })
}

func (s *bookingService) SetPaymentLoading(loading bool) {
	s.update(func(st *models.BookingState) { st.IsPaymentLoading = loading })
}

func (s *bookingService) SetPaymentError(message string) {
	s.update(func(st *models.BookingState) { st.PaymentError = message })
}

// EvaluateValidation checks the raw dates against the wall clock, then the
// total. It stops at the first failure and never returns false without an error.
func (s *bookingService) EvaluateValidation() (bool, error) {
	info := s.BookingInfo()
	now := s.deps.Now()

	if !(info.DateOne.After(now) && info.DateTwo.After(now)) {
		return false, &ValidationError{Reason: ErrInvalidDateRange}
	}
	if pricing.Total(info.Prices, true).IsNegative() {
		return false, &ValidationError{Reason: ErrInvalidPrice}
	}
	return true, nil
}

func (s *bookingService) GetPrices(ctx context.Context, roomTypeID int64, dateOne, dateTwo models.Date) error {
	prices, err := s.deps.Reservations.FetchPrices(ctx, roomTypeID, dateOne, dateTwo)
	if err != nil {
		return err
	}
	s.SetPrices(prices)
	s.deps.Logger.Debug("prices loaded",
		zap.Int64("room_type_id", roomTypeID),
		zap.Int("nights", len(prices)))
	return nil
}

// ReserveRoom submits the custom booking payload. Any backend failure is
// reported as a ReservationError and the reservation id is left as it was.
func (s *bookingService) ReserveRoom(ctx context.Context) error {
	payload, err := s.CustomBookingInfo(ctx)
	if err != nil {
		return err
	}

	result, err := s.deps.Reservations.CreateReservation(ctx, payload)
	if err != nil {
		s.deps.Logger.Warn("reservation failed",
			zap.Int64("room_type_id", payload.RoomTypeID),
			zap.Error(err))
		return &ReservationError{Cause: err}
	}

	s.SetReservationID(result.ReservationID)
	s.deps.Logger.Info("room reserved", zap.Int64("reservation_id", result.ReservationID))
	return nil
}

func (s *bookingService) GetReservationDetails(ctx context.Context, reservationID int64) error {
	details, err := s.deps.Reservations.FetchReservationDetails(ctx, reservationID)
	if err != nil {
		return err
	}
	s.SetReservationDetails(details)
	return nil
}

func (s *bookingService) SendEmailNotification(ctx context.Context) error {
	info, err := s.BookingInfoForEmail(ctx)
	if err != nil {
		return err
	}
	info.Subject = s.deps.Email.Subject

	return s.deps.Notifications.Send(ctx, models.EmailNotification{
		EmailBCC:            s.deps.Email.BCC,
		EmailTo:             info.Email,
		EmailSubject:        s.deps.Email.Subject,
		TemplateID:          s.deps.Email.TemplateID,
		DynamicTemplateData: info,
	})
}
