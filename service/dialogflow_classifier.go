package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dialogflow "google.golang.org/api/dialogflow/v2"
	"google.golang.org/api/option"

	"voice-shopping-assistant/models"
)

// ErrClassifierUnavailable wraps every failure of the external classifier
var ErrClassifierUnavailable = errors.New("intent classifier unavailable")

// DialogflowClassifier detects intents through the Dialogflow ES v2 API
type DialogflowClassifier struct {
	sessions     *dialogflow.ProjectsAgentSessionsService
	projectID    string
	languageCode string
}

// NewDialogflowClassifier creates a DialogflowClassifier.
// opts typically carry credentials (option.WithCredentialsJSON or
// option.WithCredentialsFile).
func NewDialogflowClassifier(ctx context.Context, projectID, languageCode string, opts ...option.ClientOption) (*DialogflowClassifier, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("%w: project id is not set", ErrClassifierUnavailable)
	}
	if languageCode == "" {
		languageCode = "en-US"
	}

	svc, err := dialogflow.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create dialogflow service: %w", err)
	}

	return &DialogflowClassifier{
		sessions:     svc.Projects.Agent.Sessions,
		projectID:    projectID,
		languageCode: languageCode,
	}, nil
}

// Ensure DialogflowClassifier implements ClassifierInterface
var _ ClassifierInterface = (*DialogflowClassifier)(nil)

// Classify sends text to the agent session and normalizes the query result.
// Missing fields in the response become empty values.
func (c *DialogflowClassifier) Classify(ctx context.Context, sessionID, text string) (*models.Classification, error) {
	session := fmt.Sprintf("projects/%s/agent/sessions/%s", c.projectID, sessionID)

	req := &dialogflow.GoogleCloudDialogflowV2DetectIntentRequest{
		QueryInput: &dialogflow.GoogleCloudDialogflowV2QueryInput{
			Text: &dialogflow.GoogleCloudDialogflowV2TextInput{
				Text:         text,
				LanguageCode: c.languageCode,
			},
		},
	}

	resp, err := c.sessions.DetectIntent(session, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: detect intent: %v", ErrClassifierUnavailable, err)
	}

	result := &models.Classification{
		Intent:    models.IntentUnknown,
		RawIntent: string(models.IntentUnknown),
		Slots:     models.Slots{},
		QueryText: text,
		Source:    models.SourceDialogflow,
	}

	qr := resp.QueryResult
	if qr == nil {
		return result, nil
	}
	if qr.QueryText != "" {
		result.QueryText = qr.QueryText
	}
	if qr.Intent != nil && qr.Intent.DisplayName != "" {
		result.RawIntent = qr.Intent.DisplayName
		result.Intent = models.NormalizeIntentName(qr.Intent.DisplayName)
	}
	result.Slots = models.ParseSlots(qr.Parameters)
	result.FulfillmentText = qr.FulfillmentText

	return result, nil
}
