package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/application/usecase"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/event"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

func TestSubmitDossier_Execute(t *testing.T) {
	t.Run("uploads every pending document and submits", func(t *testing.T) {
		d := readyDossier(t)
		pendingCount := len(d.Documents().PendingUploads())
		require.Greater(t, pendingCount, 0)

		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		publisher := &mockEventPublisher{}

		var (
			mu       sync.Mutex
			promoted []string
		)
		store := &mockDocumentStore{
			promoteFunc: func(_ context.Context, dossierID, documentType, _ string) (string, error) {
				mu.Lock()
				promoted = append(promoted, documentType)
				mu.Unlock()
				return "store/" + dossierID + "/" + documentType, nil
			},
		}

		uc := usecase.NewSubmitDossierUseCase(repo, store, publisher)

		resp, err := uc.Execute(context.Background(), dto.SubmitDossierRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
		})

		require.NoError(t, err)
		assert.Equal(t, "SUBMITTED", resp.State)
		assert.Equal(t, "SUBMITTED", resp.Status)
		assert.Len(t, promoted, pendingCount)

		saved := repo.lastSaved(t)
		assert.True(t, saved.Documents().IsComplete())
		assert.Empty(t, saved.Documents().PendingUploads())

		types := make([]string, 0, len(publisher.published))
		for _, e := range publisher.published {
			types = append(types, e.EventType())
		}
		assert.Contains(t, types, event.TypeDossierSubmitted)
	})

	t.Run("partial upload failure keeps the confirmed uploads", func(t *testing.T) {
		d := readyDossier(t)
		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		publisher := &mockEventPublisher{}

		errUnavailable := errors.New("storage unavailable")
		failType := valueobject.DocumentTypeIDFront.String()
		store := &mockDocumentStore{
			promoteFunc: func(_ context.Context, dossierID, documentType, _ string) (string, error) {
				if documentType == failType {
					return "", errUnavailable
				}
				return "store/" + dossierID + "/" + documentType, nil
			},
		}

		uc := usecase.NewSubmitDossierUseCase(repo, store, publisher)

		_, err := uc.Execute(context.Background(), dto.SubmitDossierRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errUnavailable)
		assert.Empty(t, publisher.published)

		// The successful uploads were persisted so the retry only has the
		// failed slot left.
		saved := repo.lastSaved(t)
		pending := saved.Documents().PendingUploads()
		require.Len(t, pending, 1)
		assert.Equal(t, failType, pending[0].Type.String())
		assert.False(t, saved.State().Equal(valueobject.WorkflowStateSubmitted))
	})

	t.Run("premature submit keeps the promoted uploads", func(t *testing.T) {
		// Only two of the required documents are attached. Their staging
		// files are promoted before the submission is refused, so the
		// confirmations must be persisted or a retry would chase staging
		// refs that no longer exist.
		d := collectingDossier(t)
		var err error
		d, err = d.AttachDocument(valueobject.DocumentTypeIDFront, "front.jpg", 512, "staging/ID_FRONT", fixedNow)
		require.NoError(t, err)
		d, err = d.AttachDocument(valueobject.DocumentTypeIDBack, "back.jpg", 512, "staging/ID_BACK", fixedNow)
		require.NoError(t, err)

		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := usecase.NewSubmitDossierUseCase(repo, &mockDocumentStore{}, &mockEventPublisher{})

		_, err = uc.Execute(context.Background(), dto.SubmitDossierRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
		})

		assert.ErrorIs(t, err, valueobject.ErrDocumentsIncomplete)

		saved := repo.lastSaved(t)
		for _, docType := range []valueobject.DocumentType{valueobject.DocumentTypeIDFront, valueobject.DocumentTypeIDBack} {
			slot, ok := saved.Documents().Slot(docType)
			require.True(t, ok)
			assert.True(t, slot.Uploaded, "%s confirmation must survive the refused submit", docType)
		}
		assert.Empty(t, saved.Documents().PendingUploads())
		assert.False(t, saved.State().Equal(valueobject.WorkflowStateSubmitted))
	})

	t.Run("incomplete documents block the submission", func(t *testing.T) {
		d := collectingDossier(t)
		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := usecase.NewSubmitDossierUseCase(repo, &mockDocumentStore{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.SubmitDossierRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
		})

		assert.ErrorIs(t, err, valueobject.ErrDocumentsIncomplete)
	})

	t.Run("rejected outside the document step", func(t *testing.T) {
		d := simulatedDossier(t)
		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		uc := usecase.NewSubmitDossierUseCase(repo, &mockDocumentStore{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.SubmitDossierRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
		})

		assert.ErrorIs(t, err, valueobject.ErrInvalidStateTransition)
	})

	t.Run("already uploaded documents are not promoted again", func(t *testing.T) {
		d := readyDossier(t)
		var err error
		for _, slot := range d.Documents().PendingUploads() {
			d, err = d.MarkDocumentUploaded(slot.Type, "store/"+slot.Type.String(), fixedNow)
			require.NoError(t, err)
		}

		repo := &mockDossierRepository{
			findByIDFunc: func(context.Context, string, string) (model.Dossier, error) { return d, nil },
		}
		store := &mockDocumentStore{
			promoteFunc: func(context.Context, string, string, string) (string, error) {
				t.Error("promote must not be called when nothing is pending")
				return "", nil
			},
		}
		uc := usecase.NewSubmitDossierUseCase(repo, store, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.SubmitDossierRequest{
			TenantID:  "tenant-001",
			DossierID: d.ID(),
		})

		require.NoError(t, err)
		assert.Equal(t, "SUBMITTED", resp.State)
	})
}
