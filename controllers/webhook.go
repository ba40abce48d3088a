package controllers

import (
	"bytes"
	"fmt"
	"html/template"
	"legal-aid-api/config"
	"legal-aid-api/models"
	"legal-aid-api/services"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// MailSender delivers one HTML email. config.SendMail satisfies it.
type MailSender func(to []string, subject, html string) error

// WebhookController is the inbound gateway for the external automation system.
type WebhookController struct {
	svc      *services.DocumentService
	sendMail MailSender
}

func NewWebhookController(svc *services.DocumentService, sendMail MailSender) *WebhookController {
	return &WebhookController{svc: svc, sendMail: sendMail}
}

type AutomationResultRequest struct {
	DocumentID     int    `json:"document_id"`
	Status         string `json:"status"`
	OutputFilePath string `json:"output_file_path"`
}

// AutomationResult receives a processing result from the automation system.
// The shared secret check fails closed: an unset AUTOMATION_WEBHOOK_SECRET
// rejects every caller.
func (ctl *WebhookController) AutomationResult(c *gin.Context) {
	expected := os.Getenv("AUTOMATION_WEBHOOK_SECRET")
	if expected == "" || c.GetHeader("X-Webhook-Secret") != expected {
		respondError(c, services.ErrUnauthorized)
		return
	}

	var req AutomationResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if req.DocumentID == 0 || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "document_id and status are required",
		}})
		return
	}

	doc, err := ctl.svc.ApplyAutomationResult(&services.AutomationResultInput{
		DocumentID:     req.DocumentID,
		Status:         req.Status,
		OutputFilePath: req.OutputFilePath,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if doc.Status == models.StatusProcessed {
		ctl.sendProcessedNotice(doc)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"document_id":    doc.DocumentID,
		"updated_status": doc.Status,
	})
}

var processedNoticeTmpl = template.Must(template.New("processed").Parse(`
<p>Your document <strong>{{.Name}}</strong> has finished processing.</p>
{{if .OutputPath}}<p>Output: {{.OutputPath}}</p>{{end}}
`))

// sendProcessedNotice emails the owning advocate that their document finished
// processing. Best effort: an unconfigured mailer or send failure is logged
// and otherwise ignored, so the gateway response never depends on SMTP.
func (ctl *WebhookController) sendProcessedNotice(doc *models.Document) {
	var advocate models.User
	if err := config.DB.First(&advocate, "user_id = ?", doc.AdvocateID).Error; err != nil {
		log.Printf("Processed notice for document %d skipped: advocate %d not found", doc.DocumentID, doc.AdvocateID)
		return
	}

	data := struct {
		Name       string
		OutputPath string
	}{Name: doc.Name}
	if doc.ProcessedOutputPath != nil {
		data.OutputPath = *doc.ProcessedOutputPath
	}

	var body bytes.Buffer
	if err := processedNoticeTmpl.Execute(&body, data); err != nil {
		log.Printf("Failed to render processed notice for document %d: %v", doc.DocumentID, err)
		return
	}

	subject := fmt.Sprintf("Document processed: %s", doc.Name)
	if err := ctl.sendMail([]string{advocate.Email}, subject, body.String()); err != nil {
		log.Printf("Failed to send processed notice for document %d: %v", doc.DocumentID, err)
	}
}
