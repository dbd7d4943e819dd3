package model

import "github.com/shopspring/decimal"

// EligibilityInput carries the income figures used for the debt-ratio check.
type EligibilityInput struct {
	NetSalary      decimal.Decimal `json:"net_salary"`
	MonthlyCharges decimal.Decimal `json:"monthly_charges"`
}

// EligibilityResult is the immutable outcome of a debt-ratio evaluation.
// Message is populated only when the check fails.
type EligibilityResult struct {
	DebtRatio decimal.Decimal `json:"debt_ratio"` // percent
	Eligible  bool            `json:"eligible"`
	Message   string          `json:"message,omitempty"`
}
