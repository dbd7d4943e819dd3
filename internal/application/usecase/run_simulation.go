package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/service"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// RunSimulationUseCase validates the financing parameters against the active
// rule and, when valid, computes and records the simulation.
type RunSimulationUseCase struct {
	dossierRepo port.DossierRepository
	catalog     port.RuleCatalog
	validator   *service.SimulationValidator
}

// NewRunSimulationUseCase wires dependencies.
func NewRunSimulationUseCase(
	dossierRepo port.DossierRepository,
	catalog port.RuleCatalog,
	validator *service.SimulationValidator,
) *RunSimulationUseCase {
	return &RunSimulationUseCase{dossierRepo: dossierRepo, catalog: catalog, validator: validator}
}

// Execute runs one simulation. Field validation failures are returned in the
// response, not as an error: the dossier is untouched and the caller fixes
// the fields inline.
func (uc *RunSimulationUseCase) Execute(ctx context.Context, req dto.RunSimulationRequest) (dto.SimulationResponse, error) {
	now := time.Now().UTC()

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("load dossier: %w", err)
	}

	// A dossier stepped back to item selection re-enters the simulation step
	// on its next simulation attempt.
	if d.State().Equal(valueobject.WorkflowStateSelectingItems) {
		if d, err = d.BeginSimulation(req.CreditType, now); err != nil {
			return dto.SimulationResponse{}, fmt.Errorf("begin simulation: %w", err)
		}
	}

	rule := uc.catalog.RuleFor(ctx, req.CreditType)
	simReq := model.SimulationRequest{
		CreditType:     req.CreditType,
		CartAmount:     req.CartAmount,
		DownPayment:    req.DownPayment,
		DurationMonths: req.DurationMonths,
	}

	validation := uc.validator.Validate(simReq, rule)
	if !validation.Valid {
		return dto.SimulationResponse{
			Validation: dto.ValidationResponse{Valid: false, Errors: validation.Errors},
		}, nil
	}

	result := model.Simulate(simReq, rule)
	d, err = d.RecordSimulation(simReq, result, now)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("record simulation: %w", err)
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("save dossier: %w", err)
	}

	resp := toDossierResponse(d)
	return dto.SimulationResponse{
		Validation: dto.ValidationResponse{Valid: true},
		Dossier:    &resp,
		Schedule:   toScheduleResponse(model.AmortizationSchedule(simReq, rule, now)),
	}, nil
}
