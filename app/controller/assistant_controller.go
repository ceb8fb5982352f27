package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
	"voice-shopping-assistant/service"
)

// AssistantController handles voice and text queries
type AssistantController struct {
	assistant    *service.AssistantService
	exposeErrors bool
}

// NewAssistantController creates a new AssistantController
func NewAssistantController(assistant *service.AssistantService, exposeErrors bool) *AssistantController {
	return &AssistantController{
		assistant:    assistant,
		exposeErrors: exposeErrors,
	}
}

type queryUsageExample struct {
	Method string              `json:"method"`
	Body   models.QueryRequest `json:"body"`
}

type queryUsageResponse struct {
	Message string            `json:"message"`
	Example queryUsageExample `json:"example"`
}

// QueryUsage handles GET /api/dialogflow/query
func (c *AssistantController) QueryUsage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, queryUsageResponse{
		Message: "Dialogflow endpoint is working! Use POST method with message and sessionId.",
		Example: queryUsageExample{
			Method: http.MethodPost,
			Body:   models.QueryRequest{Message: "add milk", SessionID: "test-session"},
		},
	})
}

// Query handles POST /api/dialogflow/query
func (c *AssistantController) Query(w http.ResponseWriter, r *http.Request) {
	logger.S().Debugf("📥 Query: Received %s request to %s", r.Method, r.URL.Path)

	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.S().Warnf("❌ Query: Failed to decode request body: %v", err)
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	resp, err := c.assistant.Query(r.Context(), req.Message, strings.TrimSpace(req.SessionID))
	if err != nil {
		if errors.Is(err, service.ErrMissingMessage) {
			writeError(w, http.StatusBadRequest, "Message is required")
			return
		}
		logger.S().Errorf("❌ Query: Error handling %q: %v", req.Message, err)
		WriteInternalError(w, err, c.exposeErrors)
		return
	}

	logger.S().Infof("✅ Query: %s answered with action=%q", resp.Intent, resp.Action)
	writeJSON(w, http.StatusOK, resp)
}
