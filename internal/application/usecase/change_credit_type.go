package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
)

// ChangeCreditTypeUseCase switches the active credit rule for an in-flight
// simulation, clamping the pending amounts into the new rule's bounds.
type ChangeCreditTypeUseCase struct {
	dossierRepo port.DossierRepository
	catalog     port.RuleCatalog
}

// NewChangeCreditTypeUseCase wires dependencies.
func NewChangeCreditTypeUseCase(dossierRepo port.DossierRepository, catalog port.RuleCatalog) *ChangeCreditTypeUseCase {
	return &ChangeCreditTypeUseCase{dossierRepo: dossierRepo, catalog: catalog}
}

// Execute applies the new rule. Any computed simulation or eligibility
// outcome is discarded; the clamped request survives for editing.
func (uc *ChangeCreditTypeUseCase) Execute(ctx context.Context, req dto.ChangeCreditTypeRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}

	rule := uc.catalog.RuleFor(ctx, req.CreditType)
	d, err = d.ChangeCreditType(rule, now)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("change credit type: %w", err)
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}

	return toDossierResponse(d), nil
}
