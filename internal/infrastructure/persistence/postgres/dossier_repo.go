package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
	pgutil "github.com/soufieneghribi/credit-dossier-service/pkg/postgres"
)

// DossierRepo implements port.DossierRepository. The workflow snapshots
// (simulation request and result, eligibility input and result) are stored
// as JSONB; document slots live in their own table and are rewritten with
// the aggregate in one transaction.
type DossierRepo struct {
	pool *pgxpool.Pool
}

// NewDossierRepo creates a new repository backed by PostgreSQL.
func NewDossierRepo(pool *pgxpool.Pool) *DossierRepo {
	return &DossierRepo{pool: pool}
}

// Save persists a dossier (upsert by ID with optimistic locking).
func (r *DossierRepo) Save(ctx context.Context, d model.Dossier) error {
	simulation, result, income, eligibility, err := marshalSnapshots(d)
	if err != nil {
		return err
	}

	return pgutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO dossiers (
				id, tenant_id, customer_id, state, status, cart_amount,
				simulation, result, eligibility_input, eligibility_result,
				decision_reason, version, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			ON CONFLICT (id) DO UPDATE SET
				state              = EXCLUDED.state,
				status             = EXCLUDED.status,
				simulation         = EXCLUDED.simulation,
				result             = EXCLUDED.result,
				eligibility_input  = EXCLUDED.eligibility_input,
				eligibility_result = EXCLUDED.eligibility_result,
				decision_reason    = EXCLUDED.decision_reason,
				version            = EXCLUDED.version,
				updated_at         = EXCLUDED.updated_at
			WHERE dossiers.version = EXCLUDED.version - 1
		`
		tag, err := tx.Exec(ctx, query,
			d.ID(), d.TenantID(), d.CustomerID(),
			d.State().String(), d.Status().String(), d.CartAmount(),
			simulation, result, income, eligibility,
			d.DecisionReason(), d.Version(), d.CreatedAt(), d.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("save dossier: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return valueobject.ErrVersionConflict
		}

		return saveDocuments(ctx, tx, d)
	})
}

// FindByID retrieves a single dossier with its document slots.
func (r *DossierRepo) FindByID(ctx context.Context, tenantID, id string) (model.Dossier, error) {
	query := `
		SELECT id, tenant_id, customer_id, state, status, cart_amount,
		       simulation, result, eligibility_input, eligibility_result,
		       decision_reason, version, created_at, updated_at
		FROM dossiers
		WHERE tenant_id = $1 AND id = $2
	`
	d, err := scanDossier(r.pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Dossier{}, valueobject.ErrDossierNotFound
		}
		return model.Dossier{}, err
	}
	return r.attachDocuments(ctx, d)
}

// FindByCustomerID retrieves all dossiers for a customer, newest first.
func (r *DossierRepo) FindByCustomerID(ctx context.Context, tenantID, customerID string) ([]model.Dossier, error) {
	query := `
		SELECT id, tenant_id, customer_id, state, status, cart_amount,
		       simulation, result, eligibility_input, eligibility_result,
		       decision_reason, version, created_at, updated_at
		FROM dossiers
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("query dossiers: %w", err)
	}
	defer rows.Close()

	var result []model.Dossier
	for rows.Next() {
		d, err := scanDossier(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, d := range result {
		if result[i], err = r.attachDocuments(ctx, d); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// document slots
// ---------------------------------------------------------------------------

func saveDocuments(ctx context.Context, tx pgx.Tx, d model.Dossier) error {
	if _, err := tx.Exec(ctx, `DELETE FROM dossier_documents WHERE dossier_id = $1`, d.ID()); err != nil {
		return fmt.Errorf("clear dossier documents: %w", err)
	}
	if !d.Documents().Initialised() {
		return nil
	}

	query := `
		INSERT INTO dossier_documents (
			dossier_id, document_type, file_name, file_size,
			storage_ref, uploaded, uploaded_ref, attached_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	for _, slot := range d.Documents().Slots() {
		var attachedAt *time.Time
		if slot.Attached() {
			at := slot.AttachedAt
			attachedAt = &at
		}
		_, err := tx.Exec(ctx, query,
			d.ID(), slot.Type.String(), slot.FileName, slot.FileSize,
			slot.StorageRef, slot.Uploaded, slot.UploadedRef, attachedAt,
		)
		if err != nil {
			return fmt.Errorf("save dossier document %s: %w", slot.Type, err)
		}
	}
	return nil
}

func (r *DossierRepo) attachDocuments(ctx context.Context, d model.Dossier) (model.Dossier, error) {
	query := `
		SELECT document_type, file_name, file_size,
		       storage_ref, uploaded, uploaded_ref, attached_at
		FROM dossier_documents
		WHERE dossier_id = $1
	`
	rows, err := r.pool.Query(ctx, query, d.ID())
	if err != nil {
		return model.Dossier{}, fmt.Errorf("query dossier documents: %w", err)
	}
	defer rows.Close()

	byType := make(map[string]model.DocumentSlot)
	for rows.Next() {
		var (
			typeStr, fileName        string
			fileSize                 int64
			storageRef, uploadedRef  string
			uploaded                 bool
			attachedAt               *time.Time
		)
		if err := rows.Scan(&typeStr, &fileName, &fileSize, &storageRef, &uploaded, &uploadedRef, &attachedAt); err != nil {
			return model.Dossier{}, fmt.Errorf("scan dossier document: %w", err)
		}
		docType, err := valueobject.NewDocumentType(typeStr)
		if err != nil {
			return model.Dossier{}, fmt.Errorf("parse document type: %w", err)
		}
		slot := model.DocumentSlot{
			Type:        docType,
			FileName:    fileName,
			FileSize:    fileSize,
			StorageRef:  storageRef,
			Uploaded:    uploaded,
			UploadedRef: uploadedRef,
		}
		if attachedAt != nil {
			slot.AttachedAt = *attachedAt
		}
		byType[typeStr] = slot
	}
	if err := rows.Err(); err != nil {
		return model.Dossier{}, err
	}
	if len(byType) == 0 {
		return d, nil
	}

	// Preserve the fixed slot order regardless of row order.
	slots := make([]model.DocumentSlot, 0, len(byType))
	for _, t := range valueobject.AllDocumentTypes() {
		if slot, ok := byType[t.String()]; ok {
			slots = append(slots, slot)
		}
	}
	return withDocuments(d, model.ReconstructDocumentSet(slots)), nil
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanDossier(s scannable) (model.Dossier, error) {
	var (
		id, tenantID, customerID string
		stateStr, statusStr      string
		cartAmount               decimal.Decimal
		simulation, result       []byte
		income, eligibility      []byte
		decisionReason           string
		version                  int
		createdAt, updatedAt     time.Time
	)

	err := s.Scan(
		&id, &tenantID, &customerID,
		&stateStr, &statusStr, &cartAmount,
		&simulation, &result, &income, &eligibility,
		&decisionReason, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Dossier{}, err
	}

	state, err := valueobject.NewWorkflowState(stateStr)
	if err != nil {
		return model.Dossier{}, fmt.Errorf("parse workflow state: %w", err)
	}
	status, err := valueobject.NewDossierStatus(statusStr)
	if err != nil {
		return model.Dossier{}, fmt.Errorf("parse dossier status: %w", err)
	}

	simReq, err := unmarshalSnapshot[model.SimulationRequest](simulation, "simulation")
	if err != nil {
		return model.Dossier{}, err
	}
	simResult, err := unmarshalSnapshot[model.SimulationResult](result, "result")
	if err != nil {
		return model.Dossier{}, err
	}
	eligInput, err := unmarshalSnapshot[model.EligibilityInput](income, "eligibility input")
	if err != nil {
		return model.Dossier{}, err
	}
	eligResult, err := unmarshalSnapshot[model.EligibilityResult](eligibility, "eligibility result")
	if err != nil {
		return model.Dossier{}, err
	}

	return model.ReconstructDossier(
		id, tenantID, customerID,
		state, status, cartAmount,
		simReq, simResult, eligInput, eligResult,
		model.DocumentSet{}, decisionReason,
		version, createdAt, updatedAt,
	), nil
}

func withDocuments(d model.Dossier, docs model.DocumentSet) model.Dossier {
	simReq, _ := optional(d.Simulation())
	simResult, _ := optional(d.SimulationOutcome())
	income, _ := optional(d.Income())
	eligibility, _ := optional(d.Eligibility())
	return model.ReconstructDossier(
		d.ID(), d.TenantID(), d.CustomerID(),
		d.State(), d.Status(), d.CartAmount(),
		simReq, simResult, income, eligibility,
		docs, d.DecisionReason(),
		d.Version(), d.CreatedAt(), d.UpdatedAt(),
	)
}

func optional[T any](v T, ok bool) (*T, bool) {
	if !ok {
		return nil, false
	}
	return &v, true
}

func marshalSnapshots(d model.Dossier) (simulation, result, income, eligibility []byte, err error) {
	if simulation, err = marshalSnapshot(optional(d.Simulation())); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal simulation: %w", err)
	}
	if result, err = marshalSnapshot(optional(d.SimulationOutcome())); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	if income, err = marshalSnapshot(optional(d.Income())); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal eligibility input: %w", err)
	}
	if eligibility, err = marshalSnapshot(optional(d.Eligibility())); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal eligibility result: %w", err)
	}
	return simulation, result, income, eligibility, nil
}

func marshalSnapshot[T any](v *T, _ bool) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalSnapshot[T any](data []byte, name string) (*T, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return &v, nil
}
