package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
)

// StartDossierUseCase opens the credit wizard for a customer's cart.
type StartDossierUseCase struct {
	dossierRepo port.DossierRepository
	publisher   port.EventPublisher
}

// NewStartDossierUseCase wires dependencies.
func NewStartDossierUseCase(dossierRepo port.DossierRepository, publisher port.EventPublisher) *StartDossierUseCase {
	return &StartDossierUseCase{dossierRepo: dossierRepo, publisher: publisher}
}

// Execute creates a dossier in its initial item-selection step. The credit
// type, when provided, pre-selects the rule for the simulation step.
func (uc *StartDossierUseCase) Execute(ctx context.Context, req dto.StartDossierRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	d, err := model.NewDossier(req.TenantID, req.CustomerID, req.CartAmount, now)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("create dossier: %w", err)
	}

	d, err = d.BeginSimulation(req.CreditType, now)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("begin simulation: %w", err)
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}
	if err := uc.publisher.Publish(ctx, d.DomainEvents()...); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toDossierResponse(d), nil
}
