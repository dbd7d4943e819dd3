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
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/service"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

func newCheckEligibility(repo *mockDossierRepository, publisher *mockEventPublisher) *usecase.CheckEligibilityUseCase {
	return usecase.NewCheckEligibilityUseCase(repo, &mockRuleCatalog{}, service.NewEligibilityEvaluator(), publisher)
}

func TestCheckEligibility_Execute(t *testing.T) {
	t.Run("advances from the simulation step and records the outcome", func(t *testing.T) {
		d := simulatedDossier(t)
		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		publisher := &mockEventPublisher{}
		uc := newCheckEligibility(repo, publisher)

		resp, err := uc.Execute(context.Background(), dto.CheckEligibilityRequest{
			TenantID:       "tenant-001",
			DossierID:      d.ID(),
			NetSalary:      decimal.NewFromInt(3_000),
			MonthlyCharges: decimal.NewFromInt(200),
		})

		require.NoError(t, err)
		assert.Equal(t, "VALIDATING", resp.State)
		require.NotNil(t, resp.Eligibility)
		assert.True(t, resp.Eligibility.Eligible)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, event.TypeEligibilityChecked, publisher.published[0].EventType())
	})

	t.Run("an over-extended income is recorded as ineligible", func(t *testing.T) {
		d := simulatedDossier(t)
		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := newCheckEligibility(repo, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.CheckEligibilityRequest{
			TenantID:       "tenant-001",
			DossierID:      d.ID(),
			NetSalary:      decimal.NewFromInt(1_500),
			MonthlyCharges: decimal.NewFromInt(300),
		})

		require.NoError(t, err)
		require.NotNil(t, resp.Eligibility)
		assert.False(t, resp.Eligibility.Eligible)
		assert.Contains(t, resp.Eligibility.Message, "ceiling")
	})

	t.Run("rejected without a financeable simulation", func(t *testing.T) {
		d, err := model.NewDossier("tenant-001", "customer-001", decimal.NewFromInt(10_000), fixedNow)
		require.NoError(t, err)
		d, err = d.BeginSimulation("auto", fixedNow)
		require.NoError(t, err)

		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := newCheckEligibility(repo, &mockEventPublisher{})

		_, err = uc.Execute(context.Background(), dto.CheckEligibilityRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
			NetSalary: decimal.NewFromInt(3_000),
		})

		assert.ErrorIs(t, err, valueobject.ErrSimulationNotFinanceable)
		assert.Empty(t, repo.saved)
	})
}
