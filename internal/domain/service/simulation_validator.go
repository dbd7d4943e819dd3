package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
)

// Field keys used in ValidationResult.Errors. Clients attach messages inline
// by field, so the keys are part of the API contract.
const (
	FieldCreditType     = "creditType"
	FieldCartAmount     = "cartAmount"
	FieldDownPayment    = "downPayment"
	FieldDurationMonths = "durationMonths"
)

// ValidationResult reports field-keyed messages. A field absent from Errors
// is valid.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// SimulationValidator checks a simulation request against the active credit
// rule before any computation happens. It is stateless and side-effect free.
type SimulationValidator struct{}

func NewSimulationValidator() *SimulationValidator {
	return &SimulationValidator{}
}

// Validate collects every applicable error, not just the first. Checks run in
// a fixed precedence order and only the first failure per field is kept.
func (v *SimulationValidator) Validate(req model.SimulationRequest, rule model.CreditRule) ValidationResult {
	errs := make(map[string]string)

	set := func(field, msg string) {
		if _, exists := errs[field]; !exists {
			errs[field] = msg
		}
	}

	if req.CreditType == "" {
		set(FieldCreditType, "credit type is required")
	}
	if req.CartAmount.LessThan(rule.MinAmount) {
		set(FieldCartAmount, fmt.Sprintf("amount must be at least %s", rule.MinAmount.StringFixed(2)))
	}
	if req.CartAmount.GreaterThan(rule.MaxAmount) {
		set(FieldCartAmount, fmt.Sprintf("amount must not exceed %s", rule.MaxAmount.StringFixed(2)))
	}
	if req.DownPayment.LessThan(decimal.Zero) {
		set(FieldDownPayment, "down payment must not be negative")
	}
	if req.DownPayment.GreaterThanOrEqual(req.CartAmount) {
		set(FieldDownPayment, "down payment must be lower than the cart amount")
	}
	if req.DurationMonths < rule.MinDurationMonths {
		set(FieldDurationMonths, fmt.Sprintf("duration must be at least %d months", rule.MinDurationMonths))
	}
	if req.DurationMonths > rule.MaxDurationMonths {
		set(FieldDurationMonths, fmt.Sprintf("duration must not exceed %d months", rule.MaxDurationMonths))
	}

	if len(errs) == 0 {
		return ValidationResult{Valid: true}
	}
	return ValidationResult{Valid: false, Errors: errs}
}
