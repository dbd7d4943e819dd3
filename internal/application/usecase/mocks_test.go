package usecase_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/event"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockDossierRepository struct {
	saveFunc             func(ctx context.Context, dossier model.Dossier) error
	findByIDFunc         func(ctx context.Context, tenantID, dossierID string) (model.Dossier, error)
	findByCustomerIDFunc func(ctx context.Context, tenantID, customerID string) ([]model.Dossier, error)

	saved []model.Dossier
}

func (m *mockDossierRepository) Save(ctx context.Context, dossier model.Dossier) error {
	m.saved = append(m.saved, dossier)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, dossier)
	}
	return nil
}

func (m *mockDossierRepository) FindByID(ctx context.Context, tenantID, dossierID string) (model.Dossier, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, dossierID)
	}
	return model.Dossier{}, valueobject.ErrDossierNotFound
}

func (m *mockDossierRepository) FindByCustomerID(ctx context.Context, tenantID, customerID string) ([]model.Dossier, error) {
	if m.findByCustomerIDFunc != nil {
		return m.findByCustomerIDFunc(ctx, tenantID, customerID)
	}
	return nil, nil
}

func (m *mockDossierRepository) lastSaved(t *testing.T) model.Dossier {
	t.Helper()
	require.NotEmpty(t, m.saved)
	return m.saved[len(m.saved)-1]
}

type mockEventPublisher struct {
	publishFunc func(ctx context.Context, events ...event.DomainEvent) error

	published []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	m.published = append(m.published, events...)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	return nil
}

type mockRuleCatalog struct {
	ruleForFunc func(ctx context.Context, creditType string) model.CreditRule
}

func (m *mockRuleCatalog) RuleFor(ctx context.Context, creditType string) model.CreditRule {
	if m.ruleForFunc != nil {
		return m.ruleForFunc(ctx, creditType)
	}
	return autoRule()
}

type mockDocumentStore struct {
	stageFunc   func(ctx context.Context, dossierID, documentType, fileName string, content io.Reader, size int64) (string, error)
	promoteFunc func(ctx context.Context, dossierID, documentType, stagedRef string) (string, error)
	discardFunc func(ctx context.Context, stagedRef string) error

	discarded []string
}

func (m *mockDocumentStore) Stage(ctx context.Context, dossierID, documentType, fileName string, content io.Reader, size int64) (string, error) {
	if m.stageFunc != nil {
		return m.stageFunc(ctx, dossierID, documentType, fileName, content, size)
	}
	return "staging/" + dossierID + "/" + documentType, nil
}

func (m *mockDocumentStore) Promote(ctx context.Context, dossierID, documentType, stagedRef string) (string, error) {
	if m.promoteFunc != nil {
		return m.promoteFunc(ctx, dossierID, documentType, stagedRef)
	}
	return "store/" + dossierID + "/" + documentType, nil
}

func (m *mockDocumentStore) Discard(ctx context.Context, stagedRef string) error {
	m.discarded = append(m.discarded, stagedRef)
	if m.discardFunc != nil {
		return m.discardFunc(ctx, stagedRef)
	}
	return nil
}

// --- Fixtures ---

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func autoRule() model.CreditRule {
	return model.CreditRule{
		CreditType:        "auto",
		MinAmount:         decimal.NewFromInt(1_000),
		MaxAmount:         decimal.NewFromInt(20_000),
		MinDurationMonths: 6,
		MaxDurationMonths: 60,
		InterestRate:      decimal.NewFromFloat(7.5),
		MaxDebtRatio:      decimal.NewFromInt(33),
	}
}

// simulatedDossier is in SIMULATING with a financeable recorded result.
func simulatedDossier(t *testing.T) model.Dossier {
	t.Helper()
	d, err := model.NewDossier("tenant-001", "customer-001", decimal.NewFromInt(10_000), fixedNow)
	require.NoError(t, err)
	d, err = d.BeginSimulation("auto", fixedNow)
	require.NoError(t, err)

	req := model.SimulationRequest{
		CreditType:     "auto",
		CartAmount:     decimal.NewFromInt(10_000),
		DownPayment:    decimal.NewFromInt(2_000),
		DurationMonths: 24,
	}
	d, err = d.RecordSimulation(req, model.Simulate(req, autoRule()), fixedNow)
	require.NoError(t, err)
	return d.ClearEvents()
}

// collectingDossier is in COLLECTING_DOCUMENTS with empty slots.
func collectingDossier(t *testing.T) model.Dossier {
	t.Helper()
	d := simulatedDossier(t)
	d, err := d.AdvanceToValidation(fixedNow)
	require.NoError(t, err)
	d, err = d.RecordEligibility(model.EligibilityInput{
		NetSalary:      decimal.NewFromInt(3_000),
		MonthlyCharges: decimal.NewFromInt(200),
	}, model.EligibilityResult{DebtRatio: decimal.NewFromFloat(18.7), Eligible: true}, fixedNow)
	require.NoError(t, err)
	d, err = d.AdvanceToCreation(fixedNow)
	require.NoError(t, err)
	d, err = d.MarkCreated(fixedNow)
	require.NoError(t, err)
	return d.ClearEvents()
}

// readyDossier has every required document attached but not yet uploaded.
func readyDossier(t *testing.T) model.Dossier {
	t.Helper()
	d := collectingDossier(t)
	var err error
	for _, docType := range valueobject.AllDocumentTypes() {
		if !docType.Required() {
			continue
		}
		d, err = d.AttachDocument(docType, docType.String()+".pdf", 1024, "staging/"+docType.String(), fixedNow)
		require.NoError(t, err)
	}
	return d.ClearEvents()
}

// submittedDossier has been submitted and awaits a back-office decision.
func submittedDossier(t *testing.T) model.Dossier {
	t.Helper()
	d := readyDossier(t)
	var err error
	for _, slot := range d.Documents().PendingUploads() {
		d, err = d.MarkDocumentUploaded(slot.Type, "store/"+slot.Type.String(), fixedNow)
		require.NoError(t, err)
	}
	d, err = d.Submit(fixedNow)
	require.NoError(t, err)
	return d.ClearEvents()
}
