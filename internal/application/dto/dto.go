package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// StartDossierRequest opens the credit wizard for a customer's cart.
type StartDossierRequest struct {
	TenantID   string          `json:"tenant_id"`
	CustomerID string          `json:"customer_id"`
	CartAmount decimal.Decimal `json:"cart_amount"`
	CreditType string          `json:"credit_type"`
}

// RunSimulationRequest carries the financing parameters for one simulation.
type RunSimulationRequest struct {
	TenantID       string          `json:"tenant_id"`
	DossierID      string          `json:"dossier_id"`
	CreditType     string          `json:"credit_type"`
	CartAmount     decimal.Decimal `json:"cart_amount"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	DurationMonths int             `json:"duration_months"`
}

// ChangeCreditTypeRequest switches the active rule for an in-flight simulation.
type ChangeCreditTypeRequest struct {
	TenantID   string `json:"tenant_id"`
	DossierID  string `json:"dossier_id"`
	CreditType string `json:"credit_type"`
}

// CheckEligibilityRequest carries the income figures for the debt-ratio check.
type CheckEligibilityRequest struct {
	TenantID       string          `json:"tenant_id"`
	DossierID      string          `json:"dossier_id"`
	NetSalary      decimal.Decimal `json:"net_salary"`
	MonthlyCharges decimal.Decimal `json:"monthly_charges"`
}

// CreateDossierRequest turns an eligible simulation into a durable dossier record.
type CreateDossierRequest struct {
	TenantID  string `json:"tenant_id"`
	DossierID string `json:"dossier_id"`
}

// AttachDocumentRequest stages one document file. Content is streamed, not
// serialized.
type AttachDocumentRequest struct {
	TenantID     string    `json:"tenant_id"`
	DossierID    string    `json:"dossier_id"`
	DocumentType string    `json:"document_type"`
	FileName     string    `json:"file_name"`
	FileSize     int64     `json:"file_size"`
	Content      io.Reader `json:"-"`
}

// RemoveDocumentRequest clears a document slot.
type RemoveDocumentRequest struct {
	TenantID     string `json:"tenant_id"`
	DossierID    string `json:"dossier_id"`
	DocumentType string `json:"document_type"`
}

// SubmitDossierRequest finalizes the wizard, uploading pending documents first.
type SubmitDossierRequest struct {
	TenantID  string `json:"tenant_id"`
	DossierID string `json:"dossier_id"`
}

// StepBackRequest returns the wizard one step.
type StepBackRequest struct {
	TenantID  string `json:"tenant_id"`
	DossierID string `json:"dossier_id"`
}

// GetDossierRequest identifies a dossier to retrieve.
type GetDossierRequest struct {
	TenantID  string `json:"tenant_id"`
	DossierID string `json:"dossier_id"`
}

// ListDossiersRequest lists a customer's dossiers.
type ListDossiersRequest struct {
	TenantID   string `json:"tenant_id"`
	CustomerID string `json:"customer_id"`
}

// ReviewDossierRequest records a back-office decision on a submitted dossier.
type ReviewDossierRequest struct {
	TenantID  string `json:"tenant_id"`
	DossierID string `json:"dossier_id"`
	Approve   bool   `json:"approve"`
	Reason    string `json:"reason,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// SimulationRequestResponse echoes the financing parameters held by a dossier.
type SimulationRequestResponse struct {
	CreditType     string          `json:"credit_type"`
	CartAmount     decimal.Decimal `json:"cart_amount"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	DurationMonths int             `json:"duration_months"`
}

// SimulationResultResponse is the external form of a simulation outcome.
type SimulationResultResponse struct {
	FinancedAmount decimal.Decimal `json:"financed_amount"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	CanFinance     bool            `json:"can_finance"`
}

// EligibilityResponse is the external form of a debt-ratio evaluation.
type EligibilityResponse struct {
	DebtRatio decimal.Decimal `json:"debt_ratio"`
	Eligible  bool            `json:"eligible"`
	Message   string          `json:"message,omitempty"`
}

// DocumentSlotResponse describes one document slot.
type DocumentSlotResponse struct {
	DocumentType string     `json:"document_type"`
	Required     bool       `json:"required"`
	Attached     bool       `json:"attached"`
	Uploaded     bool       `json:"uploaded"`
	FileName     string     `json:"file_name,omitempty"`
	FileSize     int64      `json:"file_size,omitempty"`
	AttachedAt   *time.Time `json:"attached_at,omitempty"`
}

// DossierResponse is the external representation of a dossier.
type DossierResponse struct {
	ID             string                     `json:"id"`
	TenantID       string                     `json:"tenant_id"`
	CustomerID     string                     `json:"customer_id"`
	State          string                     `json:"state"`
	Status         string                     `json:"status,omitempty"`
	CartAmount     decimal.Decimal            `json:"cart_amount"`
	Simulation     *SimulationRequestResponse `json:"simulation,omitempty"`
	Result         *SimulationResultResponse  `json:"result,omitempty"`
	Eligibility    *EligibilityResponse       `json:"eligibility,omitempty"`
	Documents      []DocumentSlotResponse     `json:"documents,omitempty"`
	DecisionReason string                     `json:"decision_reason,omitempty"`
	Version        int                        `json:"version"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// ValidationResponse carries field-keyed validation messages. A field absent
// from Errors is valid.
type ValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// SimulationResponse is returned by the simulation use case: either field
// errors or the updated dossier with its amortization schedule.
type SimulationResponse struct {
	Validation ValidationResponse          `json:"validation"`
	Dossier    *DossierResponse            `json:"dossier,omitempty"`
	Schedule   []AmortizationEntryResponse `json:"schedule,omitempty"`
}

// AmortizationEntryResponse is one period of an amortization schedule.
type AmortizationEntryResponse struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// CreditRuleResponse is the external form of one credit rule.
type CreditRuleResponse struct {
	CreditType        string          `json:"credit_type"`
	MinAmount         decimal.Decimal `json:"min_amount"`
	MaxAmount         decimal.Decimal `json:"max_amount"`
	MinDurationMonths int             `json:"min_duration_months"`
	MaxDurationMonths int             `json:"max_duration_months"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	MaxDebtRatio      decimal.Decimal `json:"max_debt_ratio"`
}
