package rest

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing dossier", valueobject.ErrDossierNotFound, http.StatusNotFound},
		{"unknown document type", valueobject.ErrUnknownDocumentType, http.StatusBadRequest},
		{"oversized file", valueobject.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"version conflict", valueobject.ErrVersionConflict, http.StatusConflict},
		{"invalid transition", valueobject.ErrInvalidStateTransition, http.StatusConflict},
		{"not financeable", valueobject.ErrSimulationNotFinanceable, http.StatusUnprocessableEntity},
		{"not eligible", valueobject.ErrNotEligible, http.StatusUnprocessableEntity},
		{"incomplete documents", valueobject.ErrDocumentsIncomplete, http.StatusUnprocessableEntity},
		{"wrapped sentinel", fmt.Errorf("load dossier: %w", valueobject.ErrDossierNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestWriteError_UnknownErrorsAreOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: connection refused to 10.0.3.7"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.3.7")
	assert.Contains(t, rec.Body.String(), "internal error")
}
