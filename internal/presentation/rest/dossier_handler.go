package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/dto"
	"github.com/soufieneghribi/credit-dossier-service/internal/application/usecase"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/valueobject"
	"github.com/soufieneghribi/credit-dossier-service/internal/presentation/middleware"
	"github.com/soufieneghribi/credit-dossier-service/pkg/auth"
)

// maxMultipartOverhead is the slack allowed over the document size ceiling
// for multipart boundaries and part headers.
const maxMultipartOverhead = 64 << 10

// DossierHandler exposes the credit wizard over HTTP for the storefront and
// the back office.
type DossierHandler struct {
	start       *usecase.StartDossierUseCase
	simulate    *usecase.RunSimulationUseCase
	changeType  *usecase.ChangeCreditTypeUseCase
	eligibility *usecase.CheckEligibilityUseCase
	create      *usecase.CreateDossierUseCase
	attach      *usecase.AttachDocumentUseCase
	remove      *usecase.RemoveDocumentUseCase
	upload      *usecase.UploadDocumentUseCase
	submit      *usecase.SubmitDossierUseCase
	back        *usecase.StepBackUseCase
	get         *usecase.GetDossierUseCase
	list        *usecase.ListDossiersUseCase
	review      *usecase.ReviewDossierUseCase
	rule        *usecase.GetCreditRuleUseCase
}

// NewDossierHandler creates a handler with all use-case dependencies.
func NewDossierHandler(
	start *usecase.StartDossierUseCase,
	simulate *usecase.RunSimulationUseCase,
	changeType *usecase.ChangeCreditTypeUseCase,
	eligibility *usecase.CheckEligibilityUseCase,
	create *usecase.CreateDossierUseCase,
	attach *usecase.AttachDocumentUseCase,
	remove *usecase.RemoveDocumentUseCase,
	upload *usecase.UploadDocumentUseCase,
	submit *usecase.SubmitDossierUseCase,
	back *usecase.StepBackUseCase,
	get *usecase.GetDossierUseCase,
	list *usecase.ListDossiersUseCase,
	review *usecase.ReviewDossierUseCase,
	rule *usecase.GetCreditRuleUseCase,
) *DossierHandler {
	return &DossierHandler{
		start:       start,
		simulate:    simulate,
		changeType:  changeType,
		eligibility: eligibility,
		create:      create,
		attach:      attach,
		remove:      remove,
		upload:      upload,
		submit:      submit,
		back:        back,
		get:         get,
		list:        list,
		review:      review,
		rule:        rule,
	}
}

// RegisterRoutes attaches the dossier routes to the given mux. Review is
// restricted to back-office roles.
func (h *DossierHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/credits/dossiers", h.startDossier)
	mux.HandleFunc("GET /api/v1/credits/dossiers", h.listDossiers)
	mux.HandleFunc("GET /api/v1/credits/dossiers/{id}", h.getDossier)
	mux.HandleFunc("POST /api/v1/credits/dossiers/{id}/simulation", h.runSimulation)
	mux.HandleFunc("PUT /api/v1/credits/dossiers/{id}/credit-type", h.changeCreditType)
	mux.HandleFunc("POST /api/v1/credits/dossiers/{id}/eligibility", h.checkEligibility)
	mux.HandleFunc("POST /api/v1/credits/dossiers/{id}/record", h.createRecord)
	mux.HandleFunc("POST /api/v1/credits/dossiers/{id}/documents/{type}", h.attachDocument)
	mux.HandleFunc("DELETE /api/v1/credits/dossiers/{id}/documents/{type}", h.removeDocument)
	mux.HandleFunc("POST /api/v1/credits/dossiers/{id}/documents/{type}/upload", h.uploadDocument)
	mux.HandleFunc("POST /api/v1/credits/dossiers/{id}/submit", h.submitDossier)
	mux.HandleFunc("POST /api/v1/credits/dossiers/{id}/back", h.stepBack)
	mux.HandleFunc("POST /api/v1/credits/dossiers/{id}/review",
		middleware.RequireRoles(h.reviewDossier, auth.RoleAdvisor, auth.RoleAdmin))
	mux.HandleFunc("GET /api/v1/credits/rules/{creditType}", h.getRule)
}

func (h *DossierHandler) startDossier(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	var req dto.StartDossierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.TenantID = claims.TenantID.String()
	req.CustomerID = claims.UserID.String()

	resp, err := h.start.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *DossierHandler) listDossiers(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	customerID := claims.UserID.String()
	// Back office may list any customer's dossiers.
	if q := r.URL.Query().Get("customer_id"); q != "" &&
		(claims.HasRole(auth.RoleAdvisor) || claims.HasRole(auth.RoleAdmin)) {
		customerID = q
	}

	resp, err := h.list.Execute(r.Context(), dto.ListDossiersRequest{
		TenantID:   claims.TenantID.String(),
		CustomerID: customerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dossiers": resp})
}

func (h *DossierHandler) getDossier(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	resp, err := h.get.Execute(r.Context(), dto.GetDossierRequest{
		TenantID:  claims.TenantID.String(),
		DossierID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) runSimulation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	var req dto.RunSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.TenantID = claims.TenantID.String()
	req.DossierID = r.PathValue("id")

	resp, err := h.simulate.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	if !resp.Validation.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) changeCreditType(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	var req dto.ChangeCreditTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.TenantID = claims.TenantID.String()
	req.DossierID = r.PathValue("id")

	resp, err := h.changeType.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) checkEligibility(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	var req dto.CheckEligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.TenantID = claims.TenantID.String()
	req.DossierID = r.PathValue("id")

	resp, err := h.eligibility.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) createRecord(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	resp, err := h.create.Execute(r.Context(), dto.CreateDossierRequest{
		TenantID:  claims.TenantID.String(),
		DossierID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) attachDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	// One field named "file". The body is capped before parsing so an
	// oversized upload is cut off on the wire instead of being spooled to
	// temp disk first; the margin covers multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, model.MaxDocumentSize+maxMultipartOverhead)
	if err := r.ParseMultipartForm(model.MaxDocumentSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, valueobject.ErrFileTooLarge)
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
		return
	}
	defer file.Close()

	resp, err := h.attach.Execute(r.Context(), dto.AttachDocumentRequest{
		TenantID:     claims.TenantID.String(),
		DossierID:    r.PathValue("id"),
		DocumentType: r.PathValue("type"),
		FileName:     header.Filename,
		FileSize:     header.Size,
		Content:      file,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) removeDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	resp, err := h.remove.Execute(r.Context(), dto.RemoveDocumentRequest{
		TenantID:     claims.TenantID.String(),
		DossierID:    r.PathValue("id"),
		DocumentType: r.PathValue("type"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) uploadDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	resp, err := h.upload.Execute(r.Context(), dto.RemoveDocumentRequest{
		TenantID:     claims.TenantID.String(),
		DossierID:    r.PathValue("id"),
		DocumentType: r.PathValue("type"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) submitDossier(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	resp, err := h.submit.Execute(r.Context(), dto.SubmitDossierRequest{
		TenantID:  claims.TenantID.String(),
		DossierID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) stepBack(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	resp, err := h.back.Execute(r.Context(), dto.StepBackRequest{
		TenantID:  claims.TenantID.String(),
		DossierID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) reviewDossier(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
		return
	}

	var req dto.ReviewDossierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.TenantID = claims.TenantID.String()
	req.DossierID = r.PathValue("id")

	resp, err := h.review.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DossierHandler) getRule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rule.Execute(r.Context(), r.PathValue("creditType")))
}
