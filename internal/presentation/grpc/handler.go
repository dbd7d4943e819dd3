package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/application/usecase"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// DossierHandler implements DossierServiceServer on top of the use cases.
type DossierHandler struct {
	UnimplementedDossierServiceServer

	start       *usecase.StartDossierUseCase
	simulate    *usecase.RunSimulationUseCase
	eligibility *usecase.CheckEligibilityUseCase
	create      *usecase.CreateDossierUseCase
	submit      *usecase.SubmitDossierUseCase
	get         *usecase.GetDossierUseCase
}

// NewDossierHandler creates a new handler with all use-case dependencies.
func NewDossierHandler(
	start *usecase.StartDossierUseCase,
	simulate *usecase.RunSimulationUseCase,
	eligibility *usecase.CheckEligibilityUseCase,
	create *usecase.CreateDossierUseCase,
	submit *usecase.SubmitDossierUseCase,
	get *usecase.GetDossierUseCase,
) *DossierHandler {
	return &DossierHandler{
		start:       start,
		simulate:    simulate,
		eligibility: eligibility,
		create:      create,
		submit:      submit,
		get:         get,
	}
}

// StartDossier opens the credit wizard.
func (h *DossierHandler) StartDossier(ctx context.Context, req *StartDossierRequest) (*DossierResponse, error) {
	cartAmount, err := decimal.NewFromString(req.CartAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid cart amount: %v", err)
	}

	resp, err := h.start.Execute(ctx, dto.StartDossierRequest{
		TenantID:   req.TenantID,
		CustomerID: req.CustomerID,
		CartAmount: cartAmount,
		CreditType: req.CreditType,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// RunSimulation validates and computes one financing simulation.
func (h *DossierHandler) RunSimulation(ctx context.Context, req *RunSimulationRequest) (*SimulationResponse, error) {
	cartAmount, err := decimal.NewFromString(req.CartAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid cart amount: %v", err)
	}
	downPayment := decimal.Zero
	if req.DownPayment != "" {
		if downPayment, err = decimal.NewFromString(req.DownPayment); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid down payment: %v", err)
		}
	}

	resp, err := h.simulate.Execute(ctx, dto.RunSimulationRequest{
		TenantID:       req.TenantID,
		DossierID:      req.DossierID,
		CreditType:     req.CreditType,
		CartAmount:     cartAmount,
		DownPayment:    downPayment,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// CheckEligibility runs the debt-ratio evaluation.
func (h *DossierHandler) CheckEligibility(ctx context.Context, req *CheckEligibilityRequest) (*DossierResponse, error) {
	netSalary, err := decimal.NewFromString(req.NetSalary)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid net salary: %v", err)
	}
	monthlyCharges := decimal.Zero
	if req.MonthlyCharges != "" {
		if monthlyCharges, err = decimal.NewFromString(req.MonthlyCharges); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid monthly charges: %v", err)
		}
	}

	resp, err := h.eligibility.Execute(ctx, dto.CheckEligibilityRequest{
		TenantID:       req.TenantID,
		DossierID:      req.DossierID,
		NetSalary:      netSalary,
		MonthlyCharges: monthlyCharges,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// CreateDossier turns an eligible simulation into a durable record.
func (h *DossierHandler) CreateDossier(ctx context.Context, req *CreateDossierRequest) (*DossierResponse, error) {
	resp, err := h.create.Execute(ctx, dto.CreateDossierRequest{
		TenantID:  req.TenantID,
		DossierID: req.DossierID,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// SubmitDossier finalizes the wizard.
func (h *DossierHandler) SubmitDossier(ctx context.Context, req *SubmitDossierRequest) (*DossierResponse, error) {
	resp, err := h.submit.Execute(ctx, dto.SubmitDossierRequest{
		TenantID:  req.TenantID,
		DossierID: req.DossierID,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// GetDossier retrieves a dossier by id.
func (h *DossierHandler) GetDossier(ctx context.Context, req *GetDossierRequest) (*DossierResponse, error) {
	resp, err := h.get.Execute(ctx, dto.GetDossierRequest{
		TenantID:  req.TenantID,
		DossierID: req.DossierID,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// toStatus maps domain sentinel errors to gRPC codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, valueobject.ErrDossierNotFound),
		errors.Is(err, valueobject.ErrDocumentNotAttached):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrUnknownDocumentType),
		errors.Is(err, valueobject.ErrTenantRequired),
		errors.Is(err, valueobject.ErrCustomerRequired),
		errors.Is(err, valueobject.ErrCartAmountRequired),
		errors.Is(err, valueobject.ErrFileTooLarge):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrVersionConflict),
		errors.Is(err, valueobject.ErrInvalidStateTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrSimulationNotFinanceable),
		errors.Is(err, valueobject.ErrNotEligible),
		errors.Is(err, valueobject.ErrDocumentsIncomplete):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
