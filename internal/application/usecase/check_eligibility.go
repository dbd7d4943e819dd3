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

// CheckEligibilityUseCase runs the debt-ratio evaluation against the latest
// simulation result.
type CheckEligibilityUseCase struct {
	dossierRepo port.DossierRepository
	catalog     port.RuleCatalog
	evaluator   *service.EligibilityEvaluator
	publisher   port.EventPublisher
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(
	dossierRepo port.DossierRepository,
	catalog port.RuleCatalog,
	evaluator *service.EligibilityEvaluator,
	publisher port.EventPublisher,
) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{
		dossierRepo: dossierRepo,
		catalog:     catalog,
		evaluator:   evaluator,
		publisher:   publisher,
	}
}

// Execute advances the dossier to the validation step when needed, evaluates
// the debt ratio against the active rule's ceiling, and records the outcome.
// The move out of the simulation step is gated on a financeable result.
func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, req dto.CheckEligibilityRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}

	if d.State().Equal(valueobject.WorkflowStateSimulating) {
		if d, err = d.AdvanceToValidation(now); err != nil {
			return dto.DossierResponse{}, fmt.Errorf("advance to validation: %w", err)
		}
	}

	result, ok := d.SimulationOutcome()
	if !ok {
		return dto.DossierResponse{}, valueobject.ErrSimulationNotFinanceable
	}

	sim, _ := d.Simulation()
	rule := uc.catalog.RuleFor(ctx, sim.CreditType)

	input := model.EligibilityInput{NetSalary: req.NetSalary, MonthlyCharges: req.MonthlyCharges}
	outcome := uc.evaluator.Evaluate(result.MonthlyPayment, input, rule.MaxDebtRatio)

	d, err = d.RecordEligibility(input, outcome, now)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("record eligibility: %w", err)
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}
	if err := uc.publisher.Publish(ctx, d.DomainEvents()...); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toDossierResponse(d), nil
}
