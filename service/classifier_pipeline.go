package service

import (
	"context"
	"strings"
	"time"

	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
)

// DefaultSessionID is used when the caller sends no session id
const DefaultSessionID = "default-session"

// ClassifierPipeline runs the external classifier and, on any failure,
// the fallback classifier. A nil primary means fallback only.
type ClassifierPipeline struct {
	primary  ClassifierInterface
	fallback *FallbackClassifier
	timeout  time.Duration
}

// NewClassifierPipeline creates a ClassifierPipeline.
// timeout bounds each primary call; zero means 5s.
func NewClassifierPipeline(primary ClassifierInterface, fallback *FallbackClassifier, timeout time.Duration) *ClassifierPipeline {
	if fallback == nil {
		fallback = NewFallbackClassifier()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ClassifierPipeline{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
	}
}

// Ensure ClassifierPipeline implements ClassifierInterface
var _ ClassifierInterface = (*ClassifierPipeline)(nil)

// HasPrimary reports whether an external classifier is configured
func (p *ClassifierPipeline) HasPrimary() bool {
	return p.primary != nil
}

// Classify always returns a classification and a nil error
func (p *ClassifierPipeline) Classify(ctx context.Context, sessionID, text string) (*models.Classification, error) {
	if strings.TrimSpace(sessionID) == "" {
		sessionID = DefaultSessionID
	}

	if p.primary != nil {
		result, err := p.classifyPrimary(ctx, sessionID, text)
		if err == nil && result != nil {
			return result, nil
		}
		logger.S().Warnf("⚠️  Classify: external classifier failed, using fallback rules: %v", err)
	}

	return p.fallback.Match(text), nil
}

func (p *ClassifierPipeline) classifyPrimary(ctx context.Context, sessionID, text string) (result *models.Classification, err error) {
	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &classifierPanic{value: r}
		}
	}()

	return p.primary.Classify(cctx, sessionID, text)
}

// classifierPanic reports a recovered panic from the external classifier
type classifierPanic struct {
	value any
}

func (e *classifierPanic) Error() string {
	return ErrClassifierUnavailable.Error() + ": panic in classifier"
}

func (e *classifierPanic) Unwrap() error {
	return ErrClassifierUnavailable
}
