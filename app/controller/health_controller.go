package controller

import (
	"net/http"
	"time"

	"voice-shopping-assistant/models"
)

// StoreStatus reports which list store is serving requests
type StoreStatus interface {
	Backend() string
	Degraded() bool
}

// HealthController serves the connectivity endpoints
type HealthController struct {
	env        string
	store      StoreStatus
	classifier string
	now        func() time.Time
}

// NewHealthController creates a new HealthController.
// classifier names the active intent classifier ("dialogflow" or "fallback").
func NewHealthController(env string, store StoreStatus, classifier string) *HealthController {
	return &HealthController{
		env:        env,
		store:      store,
		classifier: classifier,
		now:        time.Now,
	}
}

type serviceInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Root handles GET /
func (c *HealthController) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, serviceInfo{
		Message: "Voice Command Shopping Assistant API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"health":     "/api/health",
			"list":       "/api/list",
			"dialogflow": "/api/dialogflow/query",
			"catalog":    "/api/catalog",
		},
	})
}

// Ping handles GET /ping
func (c *HealthController) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Health handles GET /api/health
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	store := "memory"
	if c.store != nil {
		store = c.store.Backend()
		if store != "memory" && c.store.Degraded() {
			store += " (degraded)"
		}
	}

	writeJSON(w, http.StatusOK, models.HealthResponse{
		OK:          true,
		Message:     "Server is running!",
		Timestamp:   c.now().UTC().Format(time.RFC3339Nano),
		Environment: c.env,
		Store:       store,
		Classifier:  c.classifier,
	})
}
