package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	UserName string `json:"userName"`
}

type Payment struct {
	Amount decimal.Decimal `json:"amount"`
}

type ReservationModel struct {
	Name           string  `json:"name"`
	Message        string  `json:"message"`
	NumberOfGuests int     `json:"numberOfGuests"`
	Start          Date    `json:"start"`
	End            Date    `json:"end"`
	Payment        Payment `json:"payment"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
}

// CustomBookingInfo is the payload submitted to create a reservation.
type CustomBookingInfo struct {
	RoomTypeID int64            `json:"roomTypeId"`
	Model      ReservationModel `json:"model"`
}

type ReservationResult struct {
	ReservationID int64 `json:"reservationId"`
}

// FormattedPrice is a display projection of a Price.
type FormattedPrice struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// EmailBookingInfo is the dynamic template data of the confirmation email.
type EmailBookingInfo struct {
	Name                string           `json:"name"`
	Message             string           `json:"message"`
	NumberOfGuests      int              `json:"numberOfGuests"`
	CheckIn             string           `json:"checkIn"`
	CheckOut            string           `json:"checkOut"`
	Email               string           `json:"email"`
	PhoneCountry        string           `json:"phoneCountry"`
	Phone               string           `json:"phone"`
	Guests              Guests           `json:"guests"`
	Resort              Resort           `json:"resort"`
	RoomDescriptionHTML string           `json:"roomDescriptionHTML"`
	Prices              []FormattedPrice `json:"prices"`
	VAT                 string           `json:"vat"`
	Amount              string           `json:"amount"`
	Subject             string           `json:"subject,omitempty"`
}

// EmailNotification is the request body of the templated mail API.
type EmailNotification struct {
	EmailBCC            string           `json:"email_bcc"`
	EmailTo             string           `json:"email_to"`
	EmailSubject        string           `json:"email_subject"`
	TemplateID          string           `json:"template_id"`
	DynamicTemplateData EmailBookingInfo `json:"dynamic_template_data"`
}

// NightlyRate is the stored price of one night of a room type.
type NightlyRate struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	RoomTypeID int64           `gorm:"not null;uniqueIndex:idx_rate_room_date" json:"room_type_id"`
	Date       time.Time       `gorm:"type:date;not null;uniqueIndex:idx_rate_room_date" json:"date"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type Reservation struct {
	ID             int64           `gorm:"primaryKey" json:"id"`
	RoomTypeID     int64           `gorm:"not null;index" json:"room_type_id"`
	Name           string          `gorm:"not null" json:"name"`
	Message        string          `json:"message"`
	NumberOfGuests int             `gorm:"not null" json:"number_of_guests"`
	StartDate      time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time       `gorm:"type:date;not null" json:"end_date"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Email          string          `gorm:"not null" json:"email"`
	Phone          string          `json:"phone"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
