package controllers_test

import (
	"legal-aid-api/config"
	"legal-aid-api/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookPath = "/api/v1/webhooks/automation"

func seedDocument(t *testing.T, router *gin.Engine, status string) (int, string) {
	t.Helper()
	advocate := createUser(t, "ana@aid.org", "Ana Mercado", models.RoleAdvocate)
	client := createClientRecord(t, advocate, "Maria Reyes")
	kase := createCaseRecord(t, advocate, client, "Housing dispute", "HD-2026-001")
	token := tokenFor(t, advocate)

	w := doJSON(t, router, http.MethodPost, "/api/v1/documents", token, createDocumentRequest(kase.CaseID))
	require.Equal(t, http.StatusCreated, w.Code)
	docID := int(decodeBody(t, w)["document_id"].(float64))

	if status != models.StatusUploaded {
		forceStatus(t, docID, status)
	}
	return docID, token
}

// forceStatus stages a document mid-pipeline directly in the database.
func forceStatus(t *testing.T, docID int, status string) {
	t.Helper()
	require.NoError(t, config.DB.Model(&models.Document{}).
		Where("document_id = ?", docID).
		Update("status", status).Error)
}

func webhookRequest(t *testing.T, router *gin.Engine, secret string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, webhookPath, body)
	if secret != "" {
		req.Header.Set("X-Webhook-Secret", secret)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsWhenSecretUnconfigured(t *testing.T) {
	router, _ := setupTestAPI(t)
	t.Setenv("AUTOMATION_WEBHOOK_SECRET", "")
	docID, _ := seedDocument(t, router, models.StatusInProgress)

	// A payload that would otherwise be valid is still rejected.
	w := webhookRequest(t, router, "anything", map[string]interface{}{
		"document_id": docID,
		"status":      "processed",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	router, _ := setupTestAPI(t)
	t.Setenv("AUTOMATION_WEBHOOK_SECRET", "s3cret")
	docID, _ := seedDocument(t, router, models.StatusInProgress)

	w := webhookRequest(t, router, "wrong", map[string]interface{}{
		"document_id": docID,
		"status":      "processed",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = webhookRequest(t, router, "", map[string]interface{}{
		"document_id": docID,
		"status":      "processed",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookRequiresDocumentIDAndStatus(t *testing.T) {
	router, _ := setupTestAPI(t)
	t.Setenv("AUTOMATION_WEBHOOK_SECRET", "s3cret")

	w := webhookRequest(t, router, "s3cret", map[string]interface{}{"status": "processed"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = webhookRequest(t, router, "s3cret", map[string]interface{}{"document_id": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestWebhookUnknownDocument(t *testing.T) {
	router, _ := setupTestAPI(t)
	t.Setenv("AUTOMATION_WEBHOOK_SECRET", "s3cret")

	w := webhookRequest(t, router, "s3cret", map[string]interface{}{
		"document_id": 9999,
		"status":      "processed",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestWebhookOverwritesStatusAndOutputPath(t *testing.T) {
	router, _ := setupTestAPI(t)
	t.Setenv("AUTOMATION_WEBHOOK_SECRET", "s3cret")
	docID, token := seedDocument(t, router, models.StatusInProgress)

	w := webhookRequest(t, router, "s3cret", map[string]interface{}{
		"document_id":      docID,
		"status":           "processed",
		"output_file_path": "out/1.pdf",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(docID), body["document_id"])
	assert.Equal(t, "processed", body["updated_status"])

	w = doJSON(t, router, http.MethodGet, docPath(docID), token, nil)
	doc := decodeBody(t, w)
	assert.Equal(t, "processed", doc["status"])
	assert.Equal(t, "out/1.pdf", doc["processed_output_path"])

	// The gateway audits its writes as "System".
	history := doc["status_history"].([]interface{})
	newest := history[0].(map[string]interface{})
	assert.Nil(t, newest["changed_by"])
	assert.Equal(t, "System", newest["changed_by_name"])
}

func TestWebhookEmailsAdvocateWhenProcessed(t *testing.T) {
	router, _, mailer := setupTestAPIWithMailer(t)
	t.Setenv("AUTOMATION_WEBHOOK_SECRET", "s3cret")
	docID, _ := seedDocument(t, router, models.StatusInProgress)

	w := webhookRequest(t, router, "s3cret", map[string]interface{}{
		"document_id":      docID,
		"status":           "processed",
		"output_file_path": "out/1.pdf",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, mailer.sent, 1)
	notice := mailer.sent[0]
	assert.Equal(t, []string{"ana@aid.org"}, notice.To)
	assert.Contains(t, notice.Subject, "scan.jpg")
	assert.Contains(t, notice.Body, "out/1.pdf")
}

func TestWebhookNoEmailBeforeProcessed(t *testing.T) {
	router, _, mailer := setupTestAPIWithMailer(t)
	t.Setenv("AUTOMATION_WEBHOOK_SECRET", "s3cret")
	docID, _ := seedDocument(t, router, models.StatusReadyToProcess)

	w := webhookRequest(t, router, "s3cret", map[string]interface{}{
		"document_id": docID,
		"status":      "in_progress",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mailer.sent)
}

func TestWebhookAcceptsBackwardStatus(t *testing.T) {
	router, _ := setupTestAPI(t)
	t.Setenv("AUTOMATION_WEBHOOK_SECRET", "s3cret")
	docID, _ := seedDocument(t, router, models.StatusProcessed)

	w := webhookRequest(t, router, "s3cret", map[string]interface{}{
		"document_id": docID,
		"status":      "uploaded",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "uploaded", decodeBody(t, w)["updated_status"])
}

func TestWebhookRejectsUnknownStatusLabel(t *testing.T) {
	router, _ := setupTestAPI(t)
	t.Setenv("AUTOMATION_WEBHOOK_SECRET", "s3cret")
	docID, token := seedDocument(t, router, models.StatusInProgress)

	w := webhookRequest(t, router, "s3cret", map[string]interface{}{
		"document_id": docID,
		"status":      "$tatus",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = doJSON(t, router, http.MethodGet, docPath(docID), token, nil)
	assert.Equal(t, "in_progress", decodeBody(t, w)["status"])
}
