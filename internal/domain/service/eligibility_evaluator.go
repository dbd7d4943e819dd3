package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
)

var oneHundred = decimal.NewFromInt(100)

// EligibilityEvaluator computes the debt ratio and compares it to the active
// rule's ceiling. Stateless.
type EligibilityEvaluator struct{}

func NewEligibilityEvaluator() *EligibilityEvaluator {
	return &EligibilityEvaluator{}
}

// Evaluate returns the debt ratio as a percentage rounded to one decimal.
// A non-positive salary yields ratio 0 rather than an error; upstream request
// validation is expected to have rejected it already. A ratio exactly at the
// ceiling is eligible.
func (e *EligibilityEvaluator) Evaluate(monthlyPayment decimal.Decimal, input model.EligibilityInput, maxDebtRatio decimal.Decimal) model.EligibilityResult {
	ratio := decimal.Zero
	if input.NetSalary.GreaterThan(decimal.Zero) {
		ratio = monthlyPayment.Add(input.MonthlyCharges).
			Div(input.NetSalary).
			Mul(oneHundred).
			Round(1)
	}

	if ratio.GreaterThan(maxDebtRatio) {
		return model.EligibilityResult{
			DebtRatio: ratio,
			Eligible:  false,
			Message: fmt.Sprintf("debt ratio %s%% exceeds the %s%% ceiling",
				ratio.String(), maxDebtRatio.String()),
		}
	}
	return model.EligibilityResult{DebtRatio: ratio, Eligible: true}
}
