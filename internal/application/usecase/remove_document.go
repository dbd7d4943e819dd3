package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// RemoveDocumentUseCase clears one document slot.
type RemoveDocumentUseCase struct {
	dossierRepo port.DossierRepository
	documents   port.DocumentStore
}

// NewRemoveDocumentUseCase wires dependencies.
func NewRemoveDocumentUseCase(dossierRepo port.DossierRepository, documents port.DocumentStore) *RemoveDocumentUseCase {
	return &RemoveDocumentUseCase{dossierRepo: dossierRepo, documents: documents}
}

// Execute clears the slot and drops the staged file.
func (uc *RemoveDocumentUseCase) Execute(ctx context.Context, req dto.RemoveDocumentRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	docType, err := valueobject.NewDocumentType(req.DocumentType)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("%w: %s", valueobject.ErrUnknownDocumentType, req.DocumentType)
	}

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}

	prev, _ := d.Documents().Slot(docType)

	d, err = d.RemoveDocument(docType, now)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("remove document: %w", err)
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}

	if prev.StorageRef != "" {
		_ = uc.documents.Discard(ctx, prev.StorageRef)
	}

	return toDossierResponse(d), nil
}
