package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/application/usecase"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/service"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

func newRunSimulation(repo *mockDossierRepository, catalog *mockRuleCatalog) *usecase.RunSimulationUseCase {
	return usecase.NewRunSimulationUseCase(repo, catalog, service.NewSimulationValidator())
}

func TestRunSimulation_Execute(t *testing.T) {
	t.Run("computes and records a valid simulation", func(t *testing.T) {
		d, err := model.NewDossier("tenant-001", "customer-001", decimal.NewFromInt(10_000), fixedNow)
		require.NoError(t, err)
		d, err = d.BeginSimulation("auto", fixedNow)
		require.NoError(t, err)

		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := newRunSimulation(repo, &mockRuleCatalog{})

		resp, err := uc.Execute(context.Background(), dto.RunSimulationRequest{
			TenantID:       "tenant-001",
			DossierID:      d.ID(),
			CreditType:     "auto",
			CartAmount:     decimal.NewFromInt(8_000),
			DownPayment:    decimal.Zero,
			DurationMonths: 24,
		})

		require.NoError(t, err)
		assert.True(t, resp.Validation.Valid)
		require.NotNil(t, resp.Dossier)
		require.NotNil(t, resp.Dossier.Result)
		assert.True(t, resp.Dossier.Result.CanFinance)
		// 8000 at 7.5% over 24 months lands around 360 a month.
		assert.True(t, resp.Dossier.Result.MonthlyPayment.Sub(decimal.NewFromFloat(360.00)).Abs().
			LessThan(decimal.NewFromFloat(0.05)))
		assert.Len(t, resp.Schedule, 24)
		require.Len(t, repo.saved, 1)
	})

	t.Run("returns field errors without touching the dossier", func(t *testing.T) {
		d, err := model.NewDossier("tenant-001", "customer-001", decimal.NewFromInt(500), fixedNow)
		require.NoError(t, err)
		d, err = d.BeginSimulation("auto", fixedNow)
		require.NoError(t, err)

		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := newRunSimulation(repo, &mockRuleCatalog{})

		resp, err := uc.Execute(context.Background(), dto.RunSimulationRequest{
			TenantID:       "tenant-001",
			DossierID:      d.ID(),
			CreditType:     "auto",
			CartAmount:     decimal.NewFromInt(500),
			DownPayment:    decimal.Zero,
			DurationMonths: 24,
		})

		require.NoError(t, err)
		assert.False(t, resp.Validation.Valid)
		assert.Contains(t, resp.Validation.Errors, "cartAmount")
		assert.Nil(t, resp.Dossier)
		assert.Empty(t, repo.saved)
	})

	t.Run("re-enters the simulation step after a step back", func(t *testing.T) {
		d := simulatedDossier(t)
		d, err := d.StepBack(fixedNow)
		require.NoError(t, err)
		require.True(t, d.State().Equal(valueobject.WorkflowStateSelectingItems))

		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := newRunSimulation(repo, &mockRuleCatalog{})

		resp, err := uc.Execute(context.Background(), dto.RunSimulationRequest{
			TenantID:       "tenant-001",
			DossierID:      d.ID(),
			CreditType:     "auto",
			CartAmount:     decimal.NewFromInt(10_000),
			DownPayment:    decimal.NewFromInt(2_000),
			DurationMonths: 24,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.Dossier)
		assert.Equal(t, "SIMULATING", resp.Dossier.State)
	})

	t.Run("propagates a missing dossier", func(t *testing.T) {
		uc := newRunSimulation(&mockDossierRepository{}, &mockRuleCatalog{})

		_, err := uc.Execute(context.Background(), dto.RunSimulationRequest{
			TenantID:  "tenant-001",
			DossierID: "missing",
		})

		assert.ErrorIs(t, err, valueobject.ErrDossierNotFound)
	})
}
