package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
	"voice-shopping-assistant/service"
)

// ListController handles direct shopping list requests
type ListController struct {
	assistant    *service.AssistantService
	exposeErrors bool
}

// NewListController creates a new ListController
func NewListController(assistant *service.AssistantService, exposeErrors bool) *ListController {
	return &ListController{
		assistant:    assistant,
		exposeErrors: exposeErrors,
	}
}

// GetList handles GET /api/list
func (c *ListController) GetList(w http.ResponseWriter, r *http.Request) {
	items, err := c.assistant.ListItems(r.Context())
	if err != nil {
		logger.S().Errorf("❌ GetList: Error loading list: %v", err)
		WriteInternalError(w, err, c.exposeErrors)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// AddItem handles POST /api/list
func (c *ListController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddListItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.S().Warnf("❌ AddItem: Failed to decode request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := c.assistant.AddItem(r.Context(), req.Name, req.Quantity, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidListItem) {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		logger.S().Errorf("❌ AddItem: Error adding %q: %v", req.Name, err)
		WriteInternalError(w, err, c.exposeErrors)
		return
	}

	logger.S().Infof("✅ AddItem: Added %s (id=%s)", saved.Name, saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// DeleteItem handles DELETE /api/list/{id}
func (c *ListController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.assistant.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrInvalidListItem) {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}
		logger.S().Errorf("❌ DeleteItem: Error deleting %s: %v", id, err)
		WriteInternalError(w, err, c.exposeErrors)
		return
	}

	writeJSON(w, http.StatusOK, models.DeleteListItemResponse{Message: "Item deleted"})
}
