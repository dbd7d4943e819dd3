package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

// AttachDocumentUseCase stages a document file for one slot.
type AttachDocumentUseCase struct {
	dossierRepo port.DossierRepository
	documents   port.DocumentStore
}

// NewAttachDocumentUseCase wires dependencies.
func NewAttachDocumentUseCase(dossierRepo port.DossierRepository, documents port.DocumentStore) *AttachDocumentUseCase {
	return &AttachDocumentUseCase{dossierRepo: dossierRepo, documents: documents}
}

// Execute stages the file and records the attachment, replacing any earlier
// file for the same type. Oversized files are rejected before anything is
// written. Replacing an attached file clears its upload confirmation.
func (uc *AttachDocumentUseCase) Execute(ctx context.Context, req dto.AttachDocumentRequest) (dto.DossierResponse, error) {
	now := time.Now().UTC()

	if req.FileSize > model.MaxDocumentSize {
		return dto.DossierResponse{}, valueobject.ErrFileTooLarge
	}

	docType, err := valueobject.NewDocumentType(req.DocumentType)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("%w: %s", valueobject.ErrUnknownDocumentType, req.DocumentType)
	}

	d, err := uc.dossierRepo.FindByID(ctx, req.TenantID, req.DossierID)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("load dossier: %w", err)
	}

	prev, _ := d.Documents().Slot(docType)

	stagedRef, err := uc.documents.Stage(ctx, d.ID(), docType.String(), req.FileName, req.Content, req.FileSize)
	if err != nil {
		return dto.DossierResponse{}, fmt.Errorf("stage document: %w", err)
	}

	d, err = d.AttachDocument(docType, req.FileName, req.FileSize, stagedRef, now)
	if err != nil {
		if discardErr := uc.documents.Discard(ctx, stagedRef); discardErr != nil {
			err = fmt.Errorf("%w (discard staged file: %v)", err, discardErr)
		}
		return dto.DossierResponse{}, err
	}

	if err := uc.dossierRepo.Save(ctx, d); err != nil {
		return dto.DossierResponse{}, fmt.Errorf("save dossier: %w", err)
	}

	// Best effort: the replaced staging file is unreachable after the save.
	if prev.Attached() && prev.StorageRef != "" && prev.StorageRef != stagedRef {
		_ = uc.documents.Discard(ctx, prev.StorageRef)
	}

	return toDossierResponse(d), nil
}
