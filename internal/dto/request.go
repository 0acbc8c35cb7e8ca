package dto

import "github.com/Eursukkul/booking-microservice/booking-flow/internal/models"

type StartBookingRequest struct {
	Resort    models.Resort `json:"resort" validate:"required"`
	ReturnURL string        `json:"return_url" validate:"required"`
}

type SetStepRequest struct {
	ID *int `json:"id" validate:"required,gte=0,lte=8"`
}

type UpdateDialogRequest struct {
	IsOpen *bool `json:"is_open" validate:"required"`
}

// UpdateBookingInfoRequest applies every non-nil field through its setter.
type UpdateBookingInfoRequest struct {
	Guests              *models.Guests   `json:"guests" validate:"omitempty"`
	DateOne             *string          `json:"date_one" validate:"omitempty,datetime=2006-01-02"`
	DateTwo             *string          `json:"date_two" validate:"omitempty,datetime=2006-01-02"`
	Message             *string          `json:"message"`
	Name                *string          `json:"name"`
	Email               *string          `json:"email" validate:"omitempty,email"`
	PhoneNumber         *string          `json:"phone_number" validate:"omitempty,numeric"`
	PhoneCountry        *models.Country  `json:"phone_country"`
	PayWith             *string          `json:"pay_with"`
	FullName            *string          `json:"full_name"`
	AddressLine         *string          `json:"address_line"`
	AddressZip          *string          `json:"address_zip"`
	AddressCity         *string          `json:"address_city"`
	AddressState        *string          `json:"address_state"`
	RoomType            *models.RoomType `json:"room_type"`
	ReturnURL           *string          `json:"return_url"`
	RoomDescriptionHTML *string          `json:"room_description_html"`
	IsPaymentLoading    *bool            `json:"is_payment_loading"`
	PaymentError        *string          `json:"payment_error"`
}

type FetchPricesRequest struct {
	RoomTypeID int64  `json:"room_type_id" validate:"required,gt=0"`
	DateOne    string `json:"date_one" validate:"required,datetime=2006-01-02"`
	DateTwo    string `json:"date_two" validate:"required,datetime=2006-01-02"`
}
