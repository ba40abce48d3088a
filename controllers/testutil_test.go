package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"legal-aid-api/config"
	"legal-aid-api/controllers"
	"legal-aid-api/middleware"
	"legal-aid-api/models"
	"legal-aid-api/routes"
	"legal-aid-api/services"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

type recordingNotifier struct {
	calls []services.ReadyToProcessPayload
}

func (n *recordingNotifier) NotifyReadyToProcess(payload services.ReadyToProcessPayload) {
	n.calls = append(n.calls, payload)
}

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

type recordingMailer struct {
	sent []sentMail
}

func (m *recordingMailer) Send(to []string, subject, html string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: html})
	return nil
}

// setupTestAPI wires the full router against an in-memory database, the same
// way cmd/api does against MySQL.
func setupTestAPI(t *testing.T) (*gin.Engine, *recordingNotifier) {
	t.Helper()
	router, notifier, _ := setupTestAPIWithMailer(t)
	return router, notifier
}

func setupTestAPIWithMailer(t *testing.T) (*gin.Engine, *recordingNotifier, *recordingMailer) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", testJWTSecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.MigrateDB(db))
	config.DB = db

	notifier := &recordingNotifier{}
	mailer := &recordingMailer{}
	svc := services.NewDocumentService(db, notifier)

	router := gin.New()
	routes.SetupRoutes(router,
		controllers.NewDocumentController(svc),
		controllers.NewWebhookController(svc, mailer.Send),
	)
	return router, notifier, mailer
}

func createUser(t *testing.T, email, fullName, role string) models.User {
	t.Helper()
	hash, err := controllers.HashPassword("sup3rsecret")
	require.NoError(t, err)
	user := models.User{Email: email, PasswordHash: hash, FullName: fullName, Role: role, Active: true}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func createClientRecord(t *testing.T, advocate models.User, name string) models.Client {
	t.Helper()
	client := models.Client{AdvocateID: advocate.UserID, FullName: name, Email: "client@example.com"}
	require.NoError(t, config.DB.Create(&client).Error)
	return client
}

func createCaseRecord(t *testing.T, advocate models.User, client models.Client, title, number string) models.Case {
	t.Helper()
	kase := models.Case{
		ClientID:   client.ClientID,
		AdvocateID: advocate.UserID,
		Title:      title,
		CaseNumber: number,
		Status:     models.CaseStatusActive,
	}
	require.NoError(t, config.DB.Create(&kase).Error)
	return kase
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	claims := middleware.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := jsonRequest(t, method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func docPath(documentID int) string {
	return fmt.Sprintf("/api/v1/documents/%d", documentID)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error envelope, got %s", w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}
