//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	serviceURL string
	jwtSecret  string
)

func TestMain(m *testing.M) {
	serviceURL = os.Getenv("SERVICE_URL")
	if serviceURL == "" {
		serviceURL = "http://localhost:8095"
	}
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "e2e-secret"
	}

	// Wait for the service to be ready
	for i := 0; i < 30; i++ {
		resp, err := http.Get(serviceURL + "/healthz")
		if err == nil && resp.StatusCode == 200 {
			break
		}
		time.Sleep(2 * time.Second)
	}

	os.Exit(m.Run())
}

func customerToken(t *testing.T, roles ...string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss":       "storefront-gateway",
		"sub":       uuid.NewString(),
		"user_id":   uuid.NewString(),
		"tenant_id": "00000000-0000-0000-0000-000000000010",
		"roles":     roles,
		"exp":       time.Now().Add(time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, token, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, serviceURL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 {
		json.Unmarshal(data, &decoded)
	}
	return resp, decoded
}

func TestHealthCheck(t *testing.T) {
	resp, err := http.Get(serviceURL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "ok", body["status"])
}

func TestCreditWizardFlow(t *testing.T) {
	t.Skip("Requires the full stack running - enable in CI")

	token := customerToken(t)

	// Step 1: open the wizard for a cart
	resp, body := doJSON(t, token, http.MethodPost, "/api/v1/credits/dossiers", map[string]any{
		"cart_amount": "8000",
		"credit_type": "auto",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	dossierID, _ := body["id"].(string)
	require.NotEmpty(t, dossierID)
	assert.Equal(t, "SIMULATING", body["state"])

	base := "/api/v1/credits/dossiers/" + dossierID

	// Step 2: run a simulation
	resp, body = doJSON(t, token, http.MethodPost, base+"/simulation", map[string]any{
		"credit_type":     "auto",
		"cart_amount":     "8000",
		"down_payment":    "0",
		"duration_months": 24,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	validation := body["validation"].(map[string]any)
	require.Equal(t, true, validation["valid"])

	// Step 3: eligibility on declared income
	resp, body = doJSON(t, token, http.MethodPost, base+"/eligibility", map[string]any{
		"net_salary":      "3000",
		"monthly_charges": "200",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	eligibility := body["eligibility"].(map[string]any)
	require.Equal(t, true, eligibility["eligible"])

	// Step 4: create the dossier record
	resp, body = doJSON(t, token, http.MethodPost, base+"/record", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "COLLECTING_DOCUMENTS", body["state"])

	// Step 5: attach every required document
	for _, docType := range []string{"ID_FRONT", "ID_BACK", "PAYSLIP_1", "PAYSLIP_2", "PAYSLIP_3"} {
		attachDocument(t, token, base, docType)
	}

	// Step 6: submit
	resp, body = doJSON(t, token, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SUBMITTED", body["state"])

	// Back is refused after submission
	resp, _ = doJSON(t, token, http.MethodPost, base+"/back", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Step 7: back office decision
	advisor := customerToken(t, "advisor")
	resp, body = doJSON(t, advisor, http.MethodPost, base+"/review", map[string]any{
		"approve": true,
		"reason":  "complete file",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "VALIDATED", body["status"])
}

func attachDocument(t *testing.T, token, base, docType string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", docType+".pdf")
	require.NoError(t, err)
	fmt.Fprintf(part, "e2e document payload for %s", docType)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, serviceURL+base+"/documents/"+docType, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "attach %s", docType)
}
