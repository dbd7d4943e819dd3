package usecase

import (
	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
)

func toDossierResponse(d model.Dossier) dto.DossierResponse {
	resp := dto.DossierResponse{
		ID:             d.ID(),
		TenantID:       d.TenantID(),
		CustomerID:     d.CustomerID(),
		State:          d.State().String(),
		Status:         d.Status().String(),
		CartAmount:     d.CartAmount(),
		DecisionReason: d.DecisionReason(),
		Version:        d.Version(),
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
	}

	if sim, ok := d.Simulation(); ok {
		resp.Simulation = &dto.SimulationRequestResponse{
			CreditType:     sim.CreditType,
			CartAmount:     sim.CartAmount,
			DownPayment:    sim.DownPayment,
			DurationMonths: sim.DurationMonths,
		}
	}
	if result, ok := d.SimulationOutcome(); ok {
		resp.Result = &dto.SimulationResultResponse{
			FinancedAmount: result.FinancedAmount,
			MonthlyPayment: result.MonthlyPayment,
			TotalCost:      result.TotalCost,
			InterestRate:   result.InterestRate,
			CanFinance:     result.CanFinance,
		}
	}
	if elig, ok := d.Eligibility(); ok {
		resp.Eligibility = &dto.EligibilityResponse{
			DebtRatio: elig.DebtRatio,
			Eligible:  elig.Eligible,
			Message:   elig.Message,
		}
	}
	if d.Documents().Initialised() {
		for _, slot := range d.Documents().Slots() {
			s := dto.DocumentSlotResponse{
				DocumentType: slot.Type.String(),
				Required:     slot.Type.Required(),
				Attached:     slot.Attached(),
				Uploaded:     slot.Uploaded,
				FileName:     slot.FileName,
				FileSize:     slot.FileSize,
			}
			if slot.Attached() {
				at := slot.AttachedAt
				s.AttachedAt = &at
			}
			resp.Documents = append(resp.Documents, s)
		}
	}
	return resp
}

func toScheduleResponse(schedule []model.AmortizationEntry) []dto.AmortizationEntryResponse {
	if len(schedule) == 0 {
		return nil
	}
	out := make([]dto.AmortizationEntryResponse, len(schedule))
	for i, e := range schedule {
		out[i] = dto.AmortizationEntryResponse{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		}
	}
	return out
}

func toRuleResponse(rule model.CreditRule) dto.CreditRuleResponse {
	return dto.CreditRuleResponse{
		CreditType:        rule.CreditType,
		MinAmount:         rule.MinAmount,
		MaxAmount:         rule.MaxAmount,
		MinDurationMonths: rule.MinDurationMonths,
		MaxDurationMonths: rule.MaxDurationMonths,
		InterestRate:      rule.InterestRate,
		MaxDebtRatio:      rule.MaxDebtRatio,
	}
}
