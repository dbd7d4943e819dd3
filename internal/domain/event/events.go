package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/soufieneghribi/credit-dossier-service/pkg/events"
)

// DomainEvent re-exports the shared event contract for domain-layer callers.
type DomainEvent = events.DomainEvent

const aggregateType = "Dossier"

// Event type names, used as the Kafka message key suffix and for consumer routing.
const (
	TypeDossierStarted     = "dossier.started"
	TypeEligibilityChecked = "dossier.eligibility_checked"
	TypeDossierCreated     = "dossier.created"
	TypeDocumentUploaded   = "dossier.document_uploaded"
	TypeDossierSubmitted   = "dossier.submitted"
	TypeDossierReviewed    = "dossier.reviewed"
)

// ---------------------------------------------------------------------------
// Concrete events
// ---------------------------------------------------------------------------

// DossierStarted is emitted when a customer opens the credit wizard.
type DossierStarted struct {
	events.BaseEvent
	CustomerID string          `json:"customer_id"`
	CartAmount decimal.Decimal `json:"cart_amount"`
}

func NewDossierStarted(dossierID, tenantID, customerID string, cartAmount decimal.Decimal, now time.Time) DossierStarted {
	return DossierStarted{
		BaseEvent:  base(TypeDossierStarted, dossierID, tenantID, now),
		CustomerID: customerID,
		CartAmount: cartAmount,
	}
}

// EligibilityChecked is emitted for every debt-ratio evaluation, pass or fail.
type EligibilityChecked struct {
	events.BaseEvent
	CustomerID string          `json:"customer_id"`
	DebtRatio  decimal.Decimal `json:"debt_ratio"`
	Eligible   bool            `json:"eligible"`
}

func NewEligibilityChecked(dossierID, tenantID, customerID string, debtRatio decimal.Decimal, eligible bool, now time.Time) EligibilityChecked {
	return EligibilityChecked{
		BaseEvent:  base(TypeEligibilityChecked, dossierID, tenantID, now),
		CustomerID: customerID,
		DebtRatio:  debtRatio,
		Eligible:   eligible,
	}
}

// DossierCreated is emitted once the dossier record durably exists.
type DossierCreated struct {
	events.BaseEvent
	CustomerID     string          `json:"customer_id"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

func NewDossierCreated(dossierID, tenantID, customerID string, monthlyPayment decimal.Decimal, now time.Time) DossierCreated {
	return DossierCreated{
		BaseEvent:      base(TypeDossierCreated, dossierID, tenantID, now),
		CustomerID:     customerID,
		MonthlyPayment: monthlyPayment,
	}
}

// DocumentUploaded is emitted when a document slot is confirmed durable.
type DocumentUploaded struct {
	events.BaseEvent
	DocumentType string `json:"document_type"`
}

func NewDocumentUploaded(dossierID, tenantID, documentType string, now time.Time) DocumentUploaded {
	return DocumentUploaded{
		BaseEvent:    base(TypeDocumentUploaded, dossierID, tenantID, now),
		DocumentType: documentType,
	}
}

// DossierSubmitted is emitted when the wizard completes.
type DossierSubmitted struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
}

func NewDossierSubmitted(dossierID, tenantID, customerID string, now time.Time) DossierSubmitted {
	return DossierSubmitted{
		BaseEvent:  base(TypeDossierSubmitted, dossierID, tenantID, now),
		CustomerID: customerID,
	}
}

// DossierReviewed is emitted on a back-office validation or refusal.
type DossierReviewed struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
	Decision   string `json:"decision"`
	Reason     string `json:"reason,omitempty"`
}

func NewDossierReviewed(dossierID, tenantID, customerID, decision, reason string, now time.Time) DossierReviewed {
	return DossierReviewed{
		BaseEvent:  base(TypeDossierReviewed, dossierID, tenantID, now),
		CustomerID: customerID,
		Decision:   decision,
		Reason:     reason,
	}
}

// base stamps the event with the transition time instead of the wall clock so
// that event times line up with the aggregate's UpdatedAt.
func base(eventType, dossierID, tenantID string, now time.Time) events.BaseEvent {
	b := events.NewBaseEvent(eventType, dossierID, aggregateType, tenantID)
	b.At = now.UTC()
	return b
}
