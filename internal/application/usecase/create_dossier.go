package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// CreateDossierUseCase turns an eligible simulation into a durable dossier
// record and opens the document-collection step.
type CreateDossierUseCase struct {
	dossierRepo port.DossierRepository
	publisher   port.EventPublisher
}

// NewCreateDossierUseCase wires dependencies.
func NewCreateDossierUseCase(dossierRepo port.DossierRepository, publisher port.EventPublisher) *CreateDossierUseCase {
	return &CreateDossierUseCase{dossierRepo: dossierRepo, publisher: publisher}
}

// Execute gates on the latest eligibility result, marks the record created
// and initialises the document slots. A failed save leaves the stored dossier
// untouched, so the call can simply be retried.
func (uc *CreateDossierUseCase) Execute(ctx context.Context, req dto.CreateDossierRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}

	if d.State().Equal(valueobject.WorkflowStateValidating) {
		if d, err = d.AdvanceToCreation(now); err != nil {
			return dto.DossierResponse{}, fmt.Errorf("advance to creation: %w", err)
		}
	}

	d, err = d.MarkCreated(now)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("mark created: %w", err)
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}
	if err := uc.publisher.Publish(ctx, d.DomainEvents()...); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toDossierResponse(d), nil
}
