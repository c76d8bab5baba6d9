package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"photo-review-api/config"
)

// ModerationAlert is filed with the ticketing collaborator when a review is
// rejected with high confidence.
type ModerationAlert struct {
	ReviewID   int    `json:"review_id"`
	PhotoID    int    `json:"photo_id"`
	ReviewerID int    `json:"reviewer_id"`
	Reason     string `json:"reason"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
	ReviewText string `json:"review_text"`
}

// AlertService delivers moderation alerts. Delivery is fire-and-forget: every
// failure is logged and none affects the review that triggered the alert.
type AlertService struct {
	webhookURL string
	alertEmail string
	httpClient *http.Client
}

func NewAlertService() *AlertService {
	return &AlertService{
		webhookURL: os.Getenv("MODERATION_ALERT_WEBHOOK_URL"),
		alertEmail: os.Getenv("MODERATION_ALERT_EMAIL"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FileAlert dispatches the alert in the background and returns immediately.
func (s *AlertService) FileAlert(alert ModerationAlert) {
	go func() {
		if s.webhookURL != "" {
			if err := s.postWebhook(alert); err != nil {
				log.Printf("Failed to deliver moderation alert webhook (review=%d): %v", alert.ReviewID, err)
			}
		}
		if s.alertEmail != "" {
			if err := s.sendAlertMail(alert); err != nil {
				log.Printf("Failed to deliver moderation alert mail (review=%d): %v", alert.ReviewID, err)
			}
		}
	}()
}

func (s *AlertService) postWebhook(alert ModerationAlert) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(alert); err != nil {
		return err
	}

	resp, err := s.httpClient.Post(s.webhookURL, "application/json", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *AlertService) sendAlertMail(alert ModerationAlert) error {
	subject := fmt.Sprintf("Moderation alert: review %d rejected (%s, %d%%)", alert.ReviewID, alert.Reason, alert.Confidence)
	body := fmt.Sprintf(
		"<p>Review <b>%d</b> on photo <b>%d</b> by reviewer <b>%d</b> was rejected.</p>"+
			"<p>Reason: %s (confidence %d%%)</p><p>%s</p><blockquote>%s</blockquote>",
		alert.ReviewID, alert.PhotoID, alert.ReviewerID,
		alert.Reason, alert.Confidence, alert.Reasoning, alert.ReviewText,
	)
	return config.SendMail([]string{s.alertEmail}, subject, body)
}
