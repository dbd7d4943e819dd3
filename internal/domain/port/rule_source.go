package port

import (
	"context"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
)

// RuleSource fetches the full credit-rule list from the upstream product
// configuration system.
type RuleSource interface {
	FetchRules(ctx context.Context) ([]model.CreditRule, error)
}

// RuleCatalog answers rule lookups for use cases. Implementations load the
// rule list once per process and fall back to model.DefaultCreditRule when
// the source is empty or unreachable, so lookups never fail.
type RuleCatalog interface {
	RuleFor(ctx context.Context, creditType string) model.CreditRule
}
