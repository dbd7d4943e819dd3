package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
)

// StubRuleSource is a development/test adapter serving a small fixed rule
// set. It implements port.RuleSource and allows repeatable scenarios without
// the product configuration API.
type StubRuleSource struct{}

// NewStubRuleSource creates a new stub source.
func NewStubRuleSource() *StubRuleSource {
	return &StubRuleSource{}
}

// FetchRules returns the fixed development rule set.
func (s *StubRuleSource) FetchRules(_ context.Context) ([]model.CreditRule, error) {
	return []model.CreditRule{
		{
			CreditType:        "auto",
			MinAmount:         decimal.NewFromInt(1_000),
			MaxAmount:         decimal.NewFromInt(20_000),
			MinDurationMonths: 6,
			MaxDurationMonths: 60,
			InterestRate:      decimal.NewFromFloat(7.5),
			MaxDebtRatio:      model.DefaultMaxDebtRatio,
		},
		{
			CreditType:        "electro",
			MinAmount:         decimal.NewFromInt(100),
			MaxAmount:         decimal.NewFromInt(5_000),
			MinDurationMonths: 6,
			MaxDurationMonths: 36,
			InterestRate:      decimal.Zero,
			MaxDebtRatio:      model.DefaultMaxDebtRatio,
		},
		{
			CreditType:        "furniture",
			MinAmount:         decimal.NewFromInt(300),
			MaxAmount:         decimal.NewFromInt(10_000),
			MinDurationMonths: 6,
			MaxDurationMonths: 48,
			InterestRate:      decimal.NewFromFloat(4.9),
			MaxDebtRatio:      model.DefaultMaxDebtRatio,
		},
	}, nil
}
