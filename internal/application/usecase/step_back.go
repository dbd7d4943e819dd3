package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// StepBackUseCase returns the wizard one step, discarding downstream state.
type StepBackUseCase struct {
	dossierRepo port.DossierRepository
	documents   port.DocumentStore
}

// NewStepBackUseCase wires dependencies.
func NewStepBackUseCase(dossierRepo port.DossierRepository, documents port.DocumentStore) *StepBackUseCase {
	return &StepBackUseCase{dossierRepo: dossierRepo, documents: documents}
}

// Execute steps back. Leaving the document step drops the staged files along
// with the slots.
func (uc *StepBackUseCase) Execute(ctx context.Context, req dto.StepBackRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}

	var staged []string
	if d.State().Equal(valueobject.WorkflowStateCollectingDocuments) {
		for _, slot := range d.Documents().Slots() {
			if slot.StorageRef != "" {
				staged = append(staged, slot.StorageRef)
			}
		}
	}

	d, err = d.StepBack(now)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("step back: %w", err)
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}

	for _, ref := range staged {
		_ = uc.documents.Discard(ctx, ref)
	}

	return toDossierResponse(d), nil
}
