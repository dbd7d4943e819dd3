package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// UploadDocumentUseCase promotes one staged document into durable storage.
type UploadDocumentUseCase struct {
	dossierRepo port.DossierRepository
	documents   port.DocumentStore
	publisher   port.EventPublisher
}

// NewUploadDocumentUseCase wires dependencies.
func NewUploadDocumentUseCase(
	dossierRepo port.DossierRepository,
	documents port.DocumentStore,
	publisher port.EventPublisher,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{dossierRepo: dossierRepo, documents: documents, publisher: publisher}
}

// Execute promotes the staged file for one slot and confirms the upload. A
// promotion failure leaves the slot attached-but-pending so the upload can
// be retried, alone or as part of submission.
func (uc *UploadDocumentUseCase) Execute(ctx context.Context, req dto.RemoveDocumentRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	docType, err := valueobject.NewDocumentType(req.DocumentType)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("%w: %s", valueobject.ErrUnknownDocumentType, req.DocumentType)
	}

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}

	slot, ok := d.Documents().Slot(docType)
	if !ok || !slot.Attached() {
		return dto.DossierResponse{}, valueobject.ErrDocumentNotAttached
	}

	uploadedRef, err := uc.documents.Promote(ctx, d.ID(), docType.String(), slot.StorageRef)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("promote document: %w", err)
	}

	d, err = d.MarkDocumentUploaded(docType, uploadedRef, now)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("mark uploaded: %w", err)
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}
	if err := uc.publisher.Publish(ctx, d.DomainEvents()...); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toDossierResponse(d), nil
}
