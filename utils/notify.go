package utils

import (
	"log"
	"time"

	"netlab/config"
	"netlab/models"

	"github.com/go-resty/resty/v2"
)

// NotifySubmissionGraded posts a grading event to the configured webhook
// so external review tooling can react; best effort, never blocks the
// grading request
func NotifySubmissionGraded(sub *models.LabSubmission) {
	url := config.AppConfig.GradeWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":        "submission.graded",
			"submissionId": sub.ID,
			"labId":        sub.LabID,
			"projectId":    sub.ProjectID,
			"studentId":    sub.UserID,
			"attempt":      sub.Attempt,
			"grade":        sub.Grade,
		}).
		Post(url)
	if err != nil {
		log.Printf("Failed to deliver grade webhook: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Grade webhook returned %d: %s", resp.StatusCode(), resp.String())
	}
}
