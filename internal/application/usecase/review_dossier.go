package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
)

// ReviewDossierUseCase records the back-office decision on a submitted dossier.
type ReviewDossierUseCase struct {
	dossierRepo port.DossierRepository
	publisher   port.EventPublisher
}

// NewReviewDossierUseCase wires dependencies.
func NewReviewDossierUseCase(dossierRepo port.DossierRepository, publisher port.EventPublisher) *ReviewDossierUseCase {
	return &ReviewDossierUseCase{dossierRepo: dossierRepo, publisher: publisher}
}

// Execute validates or refuses a submitted dossier.
func (uc *ReviewDossierUseCase) Execute(ctx context.Context, req dto.ReviewDossierRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}

	if req.Approve {
		d, err = d.Validate(req.Reason, now)
	} else {
		d, err = d.Refuse(req.Reason, now)
	}
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("review dossier: %w", err)
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}
	if err := uc.publisher.Publish(ctx, d.DomainEvents()...); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toDossierResponse(d), nil
}
