package port

import (
	"context"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/event"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
)

// DossierRepository persists dossier aggregates. Save performs an optimistic
// locking check on the aggregate version and returns
// valueobject.ErrVersionConflict when the stored row has moved on.
type DossierRepository interface {
	Save(ctx context.Context, dossier model.Dossier) error
	FindByID(ctx context.Context, tenantID, dossierID string) (model.Dossier, error)
	FindByCustomerID(ctx context.Context, tenantID, customerID string) ([]model.Dossier, error)
}

// EventPublisher publishes domain events after a successful save.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
