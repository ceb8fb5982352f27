package service

import (
	"context"

	"voice-shopping-assistant/models"
)

// ClassifierInterface defines the contract for intent classification
type ClassifierInterface interface {
	// Classify returns the intent and slots for text.
	// sessionID groups utterances of one conversation.
	Classify(ctx context.Context, sessionID, text string) (*models.Classification, error)
}
