package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// ReadyToProcessPayload is the outbound webhook body sent to the automation
// system when a document is marked ready_to_process.
type ReadyToProcessPayload struct {
	DocumentID    int    `json:"document_id"`
	DocumentName  string `json:"document_name"`
	FilePath      string `json:"file_path"`
	CaseTitle     string `json:"case_title"`
	AdvocateEmail string `json:"advocate_email"`
}

// AutomationNotifier informs the external automation system that a document is
// ready to process. Implementations are best-effort: failures are logged, never
// returned, and must not affect the transition that triggered them.
type AutomationNotifier interface {
	NotifyReadyToProcess(payload ReadyToProcessPayload)
}

type httpNotifier struct {
	url    string
	secret string
	client *http.Client
}

// NewAutomationNotifierFromEnv builds the outbound webhook notifier from
// AUTOMATION_OUTBOUND_WEBHOOK_URL and AUTOMATION_WEBHOOK_SECRET. An empty URL
// disables outbound notification; every call then logs and returns.
func NewAutomationNotifierFromEnv() AutomationNotifier {
	return &httpNotifier{
		url:    os.Getenv("AUTOMATION_OUTBOUND_WEBHOOK_URL"),
		secret: os.Getenv("AUTOMATION_WEBHOOK_SECRET"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *httpNotifier) NotifyReadyToProcess(payload ReadyToProcessPayload) {
	if n.url == "" {
		log.Printf("AUTOMATION_OUTBOUND_WEBHOOK_URL not configured; skipping outbound webhook for document %d", payload.DocumentID)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to encode automation webhook for document %d: %v", payload.DocumentID, err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		log.Printf("Failed to build automation webhook request for document %d: %v", payload.DocumentID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-ID", uuid.NewString())
	if n.secret != "" {
		req.Header.Set("X-Webhook-Secret", n.secret)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		log.Printf("Failed to send automation webhook for document %d: %v", payload.DocumentID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("Automation webhook for document %d returned status %d", payload.DocumentID, resp.StatusCode)
		return
	}

	log.Printf("Automation webhook sent for document %d", payload.DocumentID)
}
