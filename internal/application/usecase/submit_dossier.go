package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// SubmitDossierUseCase finalizes the wizard: every attached-but-pending
// document is uploaded first, then the dossier moves to SUBMITTED.
type SubmitDossierUseCase struct {
	dossierRepo port.DossierRepository
	documents   port.DocumentStore
	publisher   port.EventPublisher
}

// NewSubmitDossierUseCase wires dependencies.
func NewSubmitDossierUseCase(
	dossierRepo port.DossierRepository,
	documents port.DocumentStore,
	publisher port.EventPublisher,
) *SubmitDossierUseCase {
	return &SubmitDossierUseCase{dossierRepo: dossierRepo, documents: documents, publisher: publisher}
}

// Execute uploads pending documents concurrently, records the uploads that
// succeeded, and submits when the required set is complete. A partial upload
// failure persists the successful uploads and returns a retryable error: the
// next attempt uploads only what is still missing.
func (uc *SubmitDossierUseCase) Execute(ctx context.Context, req dto.SubmitDossierRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}
	if !d.State().Equal(valueobject.WorkflowStateCollectingDocuments) {
		return dto.DossierResponse{}, valueobject.ErrInvalidStateTransition
	}

	uploaded, uploadErr := uc.uploadPending(ctx, d.ID(), d.Documents().PendingUploads())
	for docType, ref := range uploaded {
		if d, err = d.MarkDocumentUploaded(docType, ref, now); err != nil {
			return dto.DossierResponse{}, fmt.Errorf("mark uploaded: %w", err)
		}
	}

	if uploadErr != nil {
		// Keep the confirmed uploads so the retry is incremental.
		return dto.DossierResponse{}, fmt.Errorf("upload documents: %w",
			uc.savingProgress(ctx, d, len(uploaded), uploadErr))
	}

	d, err = d.Submit(now)
	if err != nil {
		// The promoted files are gone from staging, so the confirmations
		// must land even when the submission itself is refused.
		return dto.DossierResponse{}, fmt.Errorf("submit dossier: %w",
			uc.savingProgress(ctx, d, len(uploaded), err))
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}
	if err := uc.publisher.Publish(ctx, d.DomainEvents()...); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toDossierResponse(d), nil
}

// savingProgress persists the upload confirmations recorded so far before
// returning cause. Without the save a retry would re-promote staging files
// that no longer exist.
func (uc *SubmitDossierUseCase) savingProgress(ctx context.Context, d model.Dossier, uploads int, cause error) error {
	if uploads == 0 {
		return cause
	}
	if saveErr := uc.dossierRepo.Save(ctx, d); saveErr != nil {
		return errors.Join(cause, fmt.Errorf("save upload progress: %w", saveErr))
	}
	return cause
}

// uploadPending promotes the pending slots concurrently and returns the
// durable references of the slots that made it, keyed by document type.
func (uc *SubmitDossierUseCase) uploadPending(
	ctx context.Context,
	dossierID string,
	pending []model.DocumentSlot,
) (map[valueobject.DocumentType]string, error) {
	if len(pending) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		uploaded = make(map[valueobject.DocumentType]string, len(pending))
		errs     []error
	)

	for _, slot := range pending {
		wg.Add(1)
		go func(slot model.DocumentSlot) {
			defer wg.Done()
			ref, err := uc.documents.Promote(ctx, dossierID, slot.Type.String(), slot.StorageRef)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", slot.Type, err))
				return
			}
			uploaded[slot.Type] = ref
		}(slot)
	}
	wg.Wait()

	return uploaded, errors.Join(errs...)
}
