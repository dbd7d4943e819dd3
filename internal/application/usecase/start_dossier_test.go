package usecase_test

import (
	"context"
	"errors"
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

var errSave = errors.New("connection reset")

func TestStartDossier_Execute(t *testing.T) {
	t.Run("creates a dossier in the simulation step", func(t *testing.T) {
		repo := &mockDossierRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewStartDossierUseCase(repo, publisher)

		resp, err := uc.Execute(context.Background(), dto.StartDossierRequest{
			TenantID:   "tenant-001",
			CustomerID: "customer-001",
			CartAmount: decimal.NewFromInt(8_000),
			CreditType: "auto",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "SIMULATING", resp.State)
		assert.True(t, decimal.NewFromInt(8_000).Equal(resp.CartAmount))
		require.NotNil(t, resp.Simulation)
		assert.Equal(t, "auto", resp.Simulation.CreditType)

		require.Len(t, repo.saved, 1)
		require.Len(t, publisher.published, 1)
		assert.Equal(t, event.TypeDossierStarted, publisher.published[0].EventType())
	})

	t.Run("rejects a missing customer", func(t *testing.T) {
		uc := usecase.NewStartDossierUseCase(&mockDossierRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.StartDossierRequest{
			TenantID:   "tenant-001",
			CartAmount: decimal.NewFromInt(8_000),
		})

		assert.ErrorIs(t, err, valueobject.ErrCustomerRequired)
	})

	t.Run("does not publish when the save fails", func(t *testing.T) {
		repo := &mockDossierRepository{
			saveFunc: func(context.Context, model.Dossier) error { return errSave },
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewStartDossierUseCase(repo, publisher)

		_, err := uc.Execute(context.Background(), dto.StartDossierRequest{
			TenantID:   "tenant-001",
			CustomerID: "customer-001",
			CartAmount: decimal.NewFromInt(8_000),
			CreditType: "auto",
		})

		assert.ErrorIs(t, err, errSave)
		assert.Empty(t, publisher.published)
	})
}
