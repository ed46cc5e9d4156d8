// Package finance holds the loan math behind the deal configurator:
// amortized payment, interest totals, and normalization of loan terms
// to the industry-standard grid lenders quote against.
package finance

import "math"

// Deal is one financing scenario. Values are dollars except APR
// (percent, e.g. 5.99) and TermMonths.
type Deal struct {
	VehiclePrice float64
	DownPayment  float64
	TradeIn      float64
	APR          float64
	TermMonths   int
}

// AmountFinanced is the principal after down payment and trade-in,
// floored at zero.
func (d Deal) AmountFinanced() float64 {
	financed := d.VehiclePrice - d.DownPayment - d.TradeIn
	if financed < 0 || math.IsNaN(financed) {
		return 0
	}
	return round2(financed)
}

// MonthlyPayment is the amortized payment for the deal, rounded to
// cents.
func (d Deal) MonthlyPayment() float64 {
	return MonthlyPayment(d.AmountFinanced(), d.APR, d.TermMonths)
}

// TotalOfPayments is the sum of all monthly payments.
func (d Deal) TotalOfPayments() float64 {
	return round2(d.MonthlyPayment() * float64(d.TermMonths))
}

// TotalInterest is what the loan costs beyond the principal.
func (d Deal) TotalInterest() float64 {
	interest := d.TotalOfPayments() - d.AmountFinanced()
	if interest < 0 {
		return 0
	}
	return round2(interest)
}

// MonthlyPayment computes the standard amortized payment:
//
//	P * r / (1 - (1+r)^-n)
//
// with r the monthly rate. A zero APR degenerates to straight division.
// Non-positive principal or term, or NaN inputs, yield 0 rather than
// propagating garbage into the UI.
func MonthlyPayment(principal, apr float64, termMonths int) float64 {
	if termMonths <= 0 || principal <= 0 || math.IsNaN(principal) || math.IsNaN(apr) {
		return 0
	}
	r := apr / 100 / 12
	if r <= 0 {
		return round2(principal / float64(termMonths))
	}
	pow := math.Pow(1+r, -float64(termMonths))
	return round2(principal * r / (1 - pow))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
