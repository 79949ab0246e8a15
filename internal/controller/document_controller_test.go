package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"deposit-defender-be/internal/mapper"
	"deposit-defender-be/internal/pkg/serverutils"
	"deposit-defender-be/internal/repository/memory"
	"deposit-defender-be/internal/service"
	"deposit-defender-be/internal/websocket"
	"deposit-defender-be/pkg/backend"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentMailer struct{}

func (silentMailer) SendReportCopy(toEmail, caseId string, pdf []byte) error { return nil }

func newDocumentTestApp(t *testing.T, backendURL string) *fiber.App {
	t.Helper()

	client := backend.NewClient(backendURL, 72)
	log := noopLogger{}
	hub := websocket.NewHub(nil, log)
	go hub.Run()

	viewStateRepo := memory.NewViewStateRepository()
	reports := service.NewReportService(
		client, nil, 300, viewStateRepo, mapper.NewReportMapper(), dropPublisher{}, log)
	docs := service.NewDocumentService(
		client, memory.NewDownloadStateRepository(), hub, silentMailer{}, reports, dropPublisher{}, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewDocumentController(docs, "/review").RegisterRoutes(api)
	return app
}

func signTestToken(t *testing.T) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{"user_id": "user-1"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDocumentRoutesRequireToken(t *testing.T) {
	app := newDocumentTestApp(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/api/documents/case-1/status", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDocumentStatusAcceptsQueryToken(t *testing.T) {
	app := newDocumentTestApp(t, "http://127.0.0.1:1")
	token := signTestToken(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/case-1/status?token="+token, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, false, data["loading"])
	assert.Equal(t, float64(0), data["progress"])
}

func TestEmailCopyRejectsInvalidAddress(t *testing.T) {
	app := newDocumentTestApp(t, "http://127.0.0.1:1")
	token := signTestToken(t)

	req := httptest.NewRequest(http.MethodPost, "/api/documents/case-1/email",
		strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Contains(t, envelope["message"], "email address")
}

func TestExpiredDownloadNamesRetentionWindow(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	app := newDocumentTestApp(t, ts.URL)
	token := signTestToken(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/case-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Contains(t, envelope["message"], "72 hours")
}

func TestLetterPreviewRendersEditedFields(t *testing.T) {
	// Edited fields render locally; no backend call is needed.
	app := newDocumentTestApp(t, "http://127.0.0.1:1")
	token := signTestToken(t)

	body := `{"fields":{"tenant_name":"Maria Garcia","landlord_name":"New Owner LLC","demand_amount":2000,"deadline_days":30}}`
	req := httptest.NewRequest(http.MethodPost, "/api/documents/case-1/letter/preview",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Contains(t, data["body"], "New Owner LLC")
	assert.Contains(t, data["body"], "$2000.00")
	assert.NotEmpty(t, data["deadline_date"])
}

func TestRenderLetterRequiresMailingAddress(t *testing.T) {
	app := newDocumentTestApp(t, "http://127.0.0.1:1")
	token := signTestToken(t)

	req := httptest.NewRequest(http.MethodPost, "/api/documents/case-1/letter",
		strings.NewReader(`{"fields":{"tenant_name":"Maria Garcia"}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
