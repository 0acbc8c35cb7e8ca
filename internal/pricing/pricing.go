// Package pricing derives the money figures of a booking from its nightly
// price list. Every figure is recomputed from the list on each call.
package pricing

import (
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"github.com/shopspring/decimal"
)

// VATRate is fixed at 10%.
var VATRate = decimal.RequireFromString("0.10")

// RoomSubtotal sums the nightly amounts. An empty list costs zero.
func RoomSubtotal(prices []models.Price) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p.Amount)
	}
	return sum
}

func VAT(prices []models.Price) decimal.Decimal {
	return RoomSubtotal(prices).Mul(VATRate)
}

func Total(prices []models.Price, includeVAT bool) decimal.Decimal {
	subtotal := RoomSubtotal(prices)
	if includeVAT {
		return subtotal.Add(subtotal.Mul(VATRate))
	}
	return subtotal
}

// FormattedPrices projects the list for display without touching it.
// Rounded amounts use half-away-from-zero to whole units; formatted dates
// read like "Sat, 1 Jun".
func FormattedPrices(prices []models.Price, rounded, formattedDate bool) []models.FormattedPrice {
	out := make([]models.FormattedPrice, len(prices))
	for i, p := range prices {
		amount := p.Amount.String()
		if rounded {
			amount = p.Amount.StringFixed(0)
		}
		date := p.Date.String()
		if formattedDate {
			date = p.Date.Display()
		}
		out[i] = models.FormattedPrice{Date: date, Amount: amount}
	}
	return out
}

// Money renders an amount with exactly two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Summary bundles the pricing views of one price list.
type Summary struct {
	RoomSubtotal    decimal.Decimal         `json:"roomSubtotal"`
	VAT             decimal.Decimal         `json:"vat"`
	TotalWithVAT    decimal.Decimal         `json:"totalWithVat"`
	TotalWithoutVAT decimal.Decimal         `json:"totalWithoutVat"`
	Prices          []models.FormattedPrice `json:"prices"`
}

func Summarize(prices []models.Price, rounded, formattedDate bool) Summary {
	return Summary{
		RoomSubtotal:    RoomSubtotal(prices),
		VAT:             VAT(prices),
		TotalWithVAT:    Total(prices, true),
		TotalWithoutVAT: Total(prices, false),
		Prices:          FormattedPrices(prices, rounded, formattedDate),
	}
}
