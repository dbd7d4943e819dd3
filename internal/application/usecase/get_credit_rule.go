package usecase

import (
	"context"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
)

// GetCreditRuleUseCase exposes the active rule for one credit type, so the
// storefront can render amount and duration bounds before simulating.
type GetCreditRuleUseCase struct {
	catalog port.RuleCatalog
}

// NewGetCreditRuleUseCase wires dependencies.
func NewGetCreditRuleUseCase(catalog port.RuleCatalog) *GetCreditRuleUseCase {
	return &GetCreditRuleUseCase{catalog: catalog}
}

// Execute never fails: an unknown credit type yields the documented defaults.
func (uc *GetCreditRuleUseCase) Execute(ctx context.Context, creditType string) dto.CreditRuleResponse {
	return toRuleResponse(uc.catalog.RuleFor(ctx, creditType))
}
