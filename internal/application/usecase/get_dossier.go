package usecase

import (
	"context"
	"fmt"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
)

// GetDossierUseCase retrieves one dossier.
type GetDossierUseCase struct {
	dossierRepo port.DossierRepository
}

// NewGetDossierUseCase wires dependencies.
func NewGetDossierUseCase(dossierRepo port.DossierRepository) *GetDossierUseCase {
	return &GetDossierUseCase{dossierRepo: dossierRepo}
}

// Execute loads a dossier by id.
func (uc *GetDossierUseCase) Execute(ctx context.Context, req dto.GetDossierRequest) (dto.DossierResponse, error) {
	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}
	return toDossierResponse(d), nil
}
