package models

import "fmt"

type StepID int

const (
	StepNotStarted StepID = iota
	StepConfirmDates
	StepAuth
	StepConfirmGuests
	StepConfirmBooking
	StepReviewPolicies
	StepCustomerInfo
	StepPaymentInfo
	StepThankYou
)

type Step struct {
	ID    StepID `json:"id"`
	Title string `json:"title,omitempty"`
}

// steps is ordered by ID; ThankYou is the highest.
var steps = []Step{
	{ID: StepNotStarted},
	{ID: StepConfirmDates},
	{ID: StepAuth},
	{ID: StepConfirmGuests},
	{ID: StepConfirmBooking},
	{ID: StepReviewPolicies, Title: "Review Rules"},
	{ID: StepCustomerInfo, Title: "Contact Info"},
	{ID: StepPaymentInfo, Title: "Payment"},
	{ID: StepThankYou, Title: "Thank You!"},
}

// Steps returns a copy of the step catalog.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// LookupStep returns the catalog entry for id.
func LookupStep(id StepID) (Step, error) {
	if id < StepNotStarted || id > StepThankYou {
		return Step{}, fmt.Errorf("unknown booking step %d", id)
	}
	return steps[id], nil
}
