package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// SimulationRequest carries the financing parameters entered by the customer.
type SimulationRequest struct {
	CreditType     string          `json:"credit_type"`
	CartAmount     decimal.Decimal `json:"cart_amount"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	DurationMonths int             `json:"duration_months"`
}

// SimulationResult is the immutable outcome of one financing simulation.
// Later workflow steps consume it as a snapshot; re-simulating replaces it.
type SimulationResult struct {
	FinancedAmount decimal.Decimal `json:"financed_amount"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	CanFinance     bool            `json:"can_finance"`
}

// Simulate computes the financing figures for a request under a rule.
//
// financed = cart − down payment. A zero rate splits the financed amount
// evenly over the duration; a positive rate uses the standard fixed-rate
// annuity formula with monthlyRate = annual/12/100:
//
//	payment = financed × r / (1 − (1+r)^−n)
//
// The total cost is derived from the unrounded monthly payment so rounding
// never compounds; both figures are rounded to 2 decimal places at the end.
// Same inputs always yield the same outputs.
func Simulate(req SimulationRequest, rule CreditRule) SimulationResult {
	financed := req.CartAmount.Sub(req.DownPayment)

	result := SimulationResult{
		FinancedAmount: financed,
		InterestRate:   rule.InterestRate,
		CanFinance:     financed.GreaterThan(decimal.Zero) && req.DurationMonths > 0,
	}
	if !result.CanFinance {
		result.MonthlyPayment = decimal.Zero
		result.TotalCost = decimal.Zero
		return result
	}

	n := float64(req.DurationMonths)
	principal := financed.InexactFloat64()
	monthlyRate := rule.InterestRate.InexactFloat64() / 12 / 100

	var monthly float64
	if monthlyRate == 0 {
		monthly = principal / n
	} else {
		monthly = principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -n))
	}

	result.MonthlyPayment = decimal.NewFromFloat(monthly).Round(2)
	result.TotalCost = decimal.NewFromFloat(monthly * n).Round(2)
	return result
}

// AmortizationEntry is one period in an amortization schedule.
type AmortizationEntry struct {
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Period           int             `json:"period"`
}

// AmortizationSchedule expands a financeable simulation into its full
// fixed-payment schedule, first payment one month after startDate. Returns
// nil when the request cannot be financed.
func AmortizationSchedule(req SimulationRequest, rule CreditRule, startDate time.Time) []AmortizationEntry {
	result := Simulate(req, rule)
	if !result.CanFinance {
		return nil
	}

	monthlyRate := decimal.NewFromFloat(rule.InterestRate.InexactFloat64() / 12 / 100)
	monthlyPayment := result.MonthlyPayment
	remaining := result.FinancedAmount

	schedule := make([]AmortizationEntry, 0, req.DurationMonths)
	for period := 1; period <= req.DurationMonths; period++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := monthlyPayment.Sub(interest)

		// Last period: absorb accumulated rounding so the balance closes at zero.
		if period == req.DurationMonths {
			principalPart = remaining
			monthlyPayment = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}
