package grpc

import (
	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
)

// messages.go defines the wire messages for credit.dossier.v1.DossierService.
// Requests carry decimals as strings; responses reuse the application DTOs,
// which the json codec serialises directly.

type StartDossierRequest struct {
	TenantID   string `json:"tenant_id"`
	CustomerID string `json:"customer_id"`
	CartAmount string `json:"cart_amount"`
	CreditType string `json:"credit_type"`
}

type RunSimulationRequest struct {
	TenantID       string `json:"tenant_id"`
	DossierID      string `json:"dossier_id"`
	CreditType     string `json:"credit_type"`
	CartAmount     string `json:"cart_amount"`
	DownPayment    string `json:"down_payment"`
	DurationMonths int    `json:"duration_months"`
}

type CheckEligibilityRequest struct {
	TenantID       string `json:"tenant_id"`
	DossierID      string `json:"dossier_id"`
	NetSalary      string `json:"net_salary"`
	MonthlyCharges string `json:"monthly_charges"`
}

type CreateDossierRequest struct {
	TenantID  string `json:"tenant_id"`
	DossierID string `json:"dossier_id"`
}

type SubmitDossierRequest struct {
	TenantID  string `json:"tenant_id"`
	DossierID string `json:"dossier_id"`
}

type GetDossierRequest struct {
	TenantID  string `json:"tenant_id"`
	DossierID string `json:"dossier_id"`
}

type DossierResponse = dto.DossierResponse

type SimulationResponse = dto.SimulationResponse
