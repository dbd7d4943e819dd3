package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps domain sentinel errors to HTTP status codes. Unrecognised
// errors become opaque 500s so internals never leak to the storefront.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, valueobject.ErrDossierNotFound),
		errors.Is(err, valueobject.ErrDocumentNotAttached):
		status = http.StatusNotFound
	case errors.Is(err, valueobject.ErrUnknownDocumentType),
		errors.Is(err, valueobject.ErrTenantRequired),
		errors.Is(err, valueobject.ErrCustomerRequired),
		errors.Is(err, valueobject.ErrCartAmountRequired):
		status = http.StatusBadRequest
	case errors.Is(err, valueobject.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, valueobject.ErrVersionConflict),
		errors.Is(err, valueobject.ErrInvalidStateTransition):
		status = http.StatusConflict
	case errors.Is(err, valueobject.ErrSimulationNotFinanceable),
		errors.Is(err, valueobject.ErrNotEligible),
		errors.Is(err, valueobject.ErrDocumentsIncomplete):
		status = http.StatusUnprocessableEntity
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
