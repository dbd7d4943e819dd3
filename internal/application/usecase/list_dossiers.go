package usecase

import (
	"context"
	"fmt"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
)

// ListDossiersUseCase lists a customer's dossiers.
type ListDossiersUseCase struct {
	dossierRepo port.DossierRepository
}

// NewListDossiersUseCase wires dependencies.
func NewListDossiersUseCase(dossierRepo port.DossierRepository) *ListDossiersUseCase {
	return &ListDossiersUseCase{dossierRepo: dossierRepo}
}

// Execute returns all dossiers for one customer, newest first.
func (uc *ListDossiersUseCase) Execute(ctx context.Context, req dto.ListDossiersRequest) ([]dto.DossierResponse, error) {
	dossiers, err := uc.dossierRepo.FindByCustomerID(ctx, req.TenantID, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("list dossiers: %w", err)
	}

	out := make([]dto.DossierResponse, len(dossiers))
	for i, d := range dossiers {
		out[i] = toDossierResponse(d)
	}
	return out, nil
}
