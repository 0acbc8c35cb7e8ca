package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSteps_Catalog(t *testing.T) {
	steps := Steps()
	assert.Len(t, steps, 9)
	for i, s := range steps {
		assert.Equal(t, StepID(i), s.ID)
	}
	assert.Equal(t, "Review Rules", steps[StepReviewPolicies].Title)
	assert.Equal(t, "Thank You!", steps[StepThankYou].Title)

	steps[0].Title = "mutated"
	assert.Empty(t, Steps()[0].Title)
}

func TestLookupStep(t *testing.T) {
	step, err := LookupStep(StepPaymentInfo)
	assert.NoError(t, err)
	assert.Equal(t, "Payment", step.Title)

	_, err = LookupStep(9)
	assert.Error(t, err)
	_, err = LookupStep(-1)
	assert.Error(t, err)
}

func TestDefaultBookingState_Literals(t *testing.T) {
	st := DefaultBookingState()

	assert.Equal(t, StepNotStarted, st.CurrentStep.ID)
	assert.False(t, st.Dialog.IsOpen)
	assert.Equal(t, Guests{Adults: 1, Children: 0, Total: 1}, st.BookingInfo.Guests)
	assert.Equal(t, "card", st.BookingInfo.PayWith)
	assert.Equal(t, "/", st.BookingInfo.ReturnURL)
	assert.Equal(t, "Cambodia", st.BookingInfo.PhoneCountry.Name)
	assert.Equal(t, "855", st.BookingInfo.PhoneCountry.CallingCode())
	assert.Equal(t, int64(0), st.ReservationID)
	assert.Empty(t, st.BookingInfo.Prices)
	assert.NotNil(t, st.BookingInfo.Prices)
	assert.Empty(t, st.ReservationDetails)
}

func TestDefaultBookingState_NoAliasing(t *testing.T) {
	first := DefaultBookingState()
	first.BookingInfo.Resort["name"] = "Sunset Bay"
	first.BookingInfo.PhoneCountry.CallingCodes[0] = "1"
	first.BookingInfo.Prices = append(first.BookingInfo.Prices, Price{Amount: decimal.NewFromInt(10)})
	first.ReservationDetails["status"] = "paid"

	second := DefaultBookingState()
	assert.Empty(t, second.BookingInfo.Resort)
	assert.Equal(t, "855", second.BookingInfo.PhoneCountry.CallingCode())
	assert.Empty(t, second.BookingInfo.Prices)
	assert.Empty(t, second.ReservationDetails)
}

func TestBookingState_CloneNestedMaps(t *testing.T) {
	st := DefaultBookingState()
	st.BookingInfo.Resort = Resort{"address": map[string]any{"city": "Kampot"}, "tags": []any{"sea"}}

	clone := st.Clone()
	clone.BookingInfo.Resort["address"].(map[string]any)["city"] = "Kep"
	clone.BookingInfo.Resort["tags"].([]any)[0] = "river"

	assert.Equal(t, "Kampot", st.BookingInfo.Resort["address"].(map[string]any)["city"])
	assert.Equal(t, "sea", st.BookingInfo.Resort["tags"].([]any)[0])
}

func TestCountry_CallingCodeEmpty(t *testing.T) {
	assert.Equal(t, "", Country{Name: "Nowhere"}.CallingCode())
}

func TestKeepLanguage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no markers", "<p>Sea view</p>", "<p>Sea view</p>"},
		{"english first", "[:en]<p>Sea view</p>[:km]<p>ទិដ្ឋភាព</p>[:]", "<p>Sea view</p>"},
		{"english last", "[:fr]<p>Vue mer</p>[:en]<p>Sea view</p>[:]", "<p>Sea view</p>"},
		{"shared text kept", "<h3>Deluxe</h3>[:en]<p>Sea view</p>[:fr]<p>Vue mer</p>[:]<p>40 m2</p>", "<h3>Deluxe</h3><p>Sea view</p><p>40 m2</p>"},
		{"no english", "[:fr]<p>Vue mer</p>[:]", ""},
		{"unterminated", "[:en]<p>Sea view</p>", "<p>Sea view</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeepLanguage("en", tt.in))
		})
	}
}
