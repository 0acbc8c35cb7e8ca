package models

import (
	"github.com/shopspring/decimal"
)

const DefaultPayWith = "card"

// Resort is the property being booked. The flow never inspects it.
type Resort map[string]any

// RoomType is the selected room category; ID keys the price lookup.
type RoomType struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

type Guests struct {
	Adults   int `json:"adults" validate:"gte=0"`
	Children int `json:"children" validate:"gte=0"`
	Total    int `json:"total"`
}

// Price is the rate for one booked night.
type Price struct {
	Date   Date            `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type Country struct {
	Name         string   `json:"name"`
	CallingCodes []string `json:"callingCodes"`
}

// CallingCode returns the first calling code, or "" when the country has none.
func (c Country) CallingCode() string {
	if len(c.CallingCodes) == 0 {
		return ""
	}
	return c.CallingCodes[0]
}

var DefaultPhoneCountry = Country{Name: "Cambodia", CallingCodes: []string{"855"}}

type BookingInfo struct {
	ReturnURL           string   `json:"returnUrl"`
	Resort              Resort   `json:"resort"`
	RoomDescriptionHTML string   `json:"roomDescriptionHTML"`
	Guests              Guests   `json:"guests"`
	Message             string   `json:"message"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	PhoneNumber         string   `json:"phoneNumber"`
	PhoneCountry        Country  `json:"phoneCountry"`
	PayWith             string   `json:"payWith"`
	RoomType            RoomType `json:"roomType"`
	DateOne             Date     `json:"dateOne"`
	DateTwo             Date     `json:"dateTwo"`
	CheckOut            Date     `json:"checkOut"`
	Prices              []Price  `json:"prices"`
	FullName            string   `json:"fullName"`
	AddressCity         string   `json:"addressCity"`
	AddressState        string   `json:"addressState"`
	AddressLine         string   `json:"addressLine"`
	AddressZip          string   `json:"addressZip"`
}

type Dialog struct {
	IsOpen bool `json:"isOpen"`
}

// DialogPatch carries the dialog fields a caller wants to change.
type DialogPatch struct {
	IsOpen *bool `json:"isOpen"`
}

// ReservationDetails is the server's reservation record, passed through untouched.
type ReservationDetails map[string]any

type BookingState struct {
	CurrentStep        Step               `json:"currentStep"`
	Dialog             Dialog             `json:"dialog"`
	BookingInfo        BookingInfo        `json:"bookingInfo"`
	ReservationID      int64              `json:"reservationId"`
	ReservationDetails ReservationDetails `json:"reservationDetails"`
	IsPaymentLoading   bool               `json:"isPaymentLoading"`
	PaymentError       string             `json:"paymentError"`
}

// defaultState is the template every session starts from and resets to.
// It is never handed out directly; callers get a Clone.
var defaultState = BookingState{
	CurrentStep: Step{ID: StepNotStarted},
	BookingInfo: BookingInfo{
		ReturnURL:    "/",
		Resort:       Resort{},
		Guests:       Guests{Adults: 1, Children: 0, Total: 1},
		PhoneCountry: DefaultPhoneCountry,
		PayWith:      DefaultPayWith,
		Prices:       []Price{},
	},
	ReservationDetails: ReservationDetails{},
}

// DefaultBookingState returns a fresh deep copy of the default template.
func DefaultBookingState() BookingState {
	return defaultState.Clone()
}

// Clone deep-copies the state so that no slice or map is shared with s.
func (s BookingState) Clone() BookingState {
	out := s
	out.BookingInfo = s.BookingInfo.Clone()
	out.ReservationDetails = s.ReservationDetails.Clone()
	return out
}

func (b BookingInfo) Clone() BookingInfo {
	out := b
	out.Resort = b.Resort.Clone()
	out.RoomType = b.RoomType.Clone()
	out.PhoneCountry = b.PhoneCountry.Clone()
	out.Prices = ClonePrices(b.Prices)
	return out
}

func (r Resort) Clone() Resort {
	return Resort(cloneMap(r))
}

func (d ReservationDetails) Clone() ReservationDetails {
	return ReservationDetails(cloneMap(d))
}

func (r RoomType) Clone() RoomType {
	out := r
	out.Attributes = cloneMap(r.Attributes)
	return out
}

func (c Country) Clone() Country {
	out := c
	if c.CallingCodes != nil {
		out.CallingCodes = append([]string(nil), c.CallingCodes...)
	}
	return out
}

func ClonePrices(prices []Price) []Price {
	if prices == nil {
		return nil
	}
	out := make([]Price, len(prices))
	copy(out, prices)
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
