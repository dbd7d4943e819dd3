package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CreditRule bounds what can be financed for one credit type: allowable
// amount and duration ranges, the annual interest rate, and the debt-ratio
// ceiling used by the eligibility check.
type CreditRule struct {
	CreditType        string          `json:"credit_type"`
	MinAmount         decimal.Decimal `json:"min_amount"`
	MaxAmount         decimal.Decimal `json:"max_amount"`
	MinDurationMonths int             `json:"min_duration_months"`
	MaxDurationMonths int             `json:"max_duration_months"`
	InterestRate      decimal.Decimal `json:"interest_rate"`   // annual, percent (7.5 = 7.5%)
	MaxDebtRatio      decimal.Decimal `json:"max_debt_ratio"`  // percent, 33 by default
}

// DefaultMaxDebtRatio is applied when a rule record carries no ceiling.
var DefaultMaxDebtRatio = decimal.NewFromInt(33)

// DefaultCreditRule is the fallback applied when the rule catalog is empty or
// has no entry for the requested credit type, so the workflow never blocks on
// missing rule data.
func DefaultCreditRule(creditType string) CreditRule {
	return CreditRule{
		CreditType:        creditType,
		MinAmount:         decimal.NewFromInt(100),
		MaxAmount:         decimal.NewFromInt(50_000),
		MinDurationMonths: 6,
		MaxDurationMonths: 60,
		InterestRate:      decimal.Zero,
		MaxDebtRatio:      DefaultMaxDebtRatio,
	}
}

// Validate checks the rule's internal consistency.
func (r CreditRule) Validate() error {
	if r.CreditType == "" {
		return fmt.Errorf("credit rule: credit type is required")
	}
	if !r.MinAmount.LessThan(r.MaxAmount) {
		return fmt.Errorf("credit rule %s: min amount %s must be below max amount %s",
			r.CreditType, r.MinAmount, r.MaxAmount)
	}
	if r.MinDurationMonths >= r.MaxDurationMonths {
		return fmt.Errorf("credit rule %s: min duration %d must be below max duration %d",
			r.CreditType, r.MinDurationMonths, r.MaxDurationMonths)
	}
	if r.InterestRate.IsNegative() {
		return fmt.Errorf("credit rule %s: interest rate must not be negative", r.CreditType)
	}
	if r.MaxDebtRatio.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("credit rule %s: max debt ratio must be positive", r.CreditType)
	}
	return nil
}

// ClampAmount returns amount forced into the rule's allowed range.
func (r CreditRule) ClampAmount(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThan(r.MinAmount) {
		return r.MinAmount
	}
	if amount.GreaterThan(r.MaxAmount) {
		return r.MaxAmount
	}
	return amount
}

// ClampDuration returns months forced into the rule's allowed range.
func (r CreditRule) ClampDuration(months int) int {
	if months < r.MinDurationMonths {
		return r.MinDurationMonths
	}
	if months > r.MaxDurationMonths {
		return r.MaxDurationMonths
	}
	return months
}
