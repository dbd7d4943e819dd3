package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/application/usecase"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/event"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// validatingDossier is in VALIDATING with the given eligibility outcome.
func validatingDossier(t *testing.T, eligible bool) model.Dossier {
	t.Helper()
	d := simulatedDossier(t)
	d, err := d.AdvanceToValidation(fixedNow)
	require.NoError(t, err)
	d, err = d.RecordEligibility(model.EligibilityInput{
		NetSalary:      decimal.NewFromInt(3_000),
		MonthlyCharges: decimal.NewFromInt(200),
	}, model.EligibilityResult{DebtRatio: decimal.NewFromFloat(18.7), Eligible: eligible}, fixedNow)
	require.NoError(t, err)
	return d.ClearEvents()
}

func TestCreateDossier_Execute(t *testing.T) {
	t.Run("creates the record and opens document collection", func(t *testing.T) {
		d := validatingDossier(t, true)
		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewCreateDossierUseCase(repo, publisher)

		resp, err := uc.Execute(context.Background(), dto.CreateDossierRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
		})

		require.NoError(t, err)
		assert.Equal(t, "COLLECTING_DOCUMENTS", resp.State)
		assert.Equal(t, "CREATED", resp.Status)
		assert.Len(t, resp.Documents, len(valueobject.AllDocumentTypes()))

		require.Len(t, publisher.published, 1)
		assert.Equal(t, event.TypeDossierCreated, publisher.published[0].EventType())
	})

	t.Run("rejected when the dossier is not eligible", func(t *testing.T) {
		d := validatingDossier(t, false)
		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := usecase.NewCreateDossierUseCase(repo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.CreateDossierRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
		})

		assert.ErrorIs(t, err, valueobject.ErrNotEligible)
		assert.Empty(t, repo.saved)
	})

	t.Run("rejected before the eligibility check", func(t *testing.T) {
		d := simulatedDossier(t)
		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := usecase.NewCreateDossierUseCase(repo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.CreateDossierRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
		})

		assert.ErrorIs(t, err, valueobject.ErrInvalidStateTransition)
	})
}
