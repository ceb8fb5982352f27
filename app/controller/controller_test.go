package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-shopping-assistant/models"
	"voice-shopping-assistant/repository"
	"voice-shopping-assistant/service"
)

// brokenRepository fails every call
type brokenRepository struct{}

func (brokenRepository) Add(context.Context, models.ListItem) (*models.ListItem, error) {
	return nil, errors.New("connection refused")
}

func (brokenRepository) List(context.Context) ([]models.ListItem, error) {
	return nil, errors.New("connection refused")
}

func (brokenRepository) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func newAssistant(repo repository.ListRepositoryInterface) *service.AssistantService {
	return service.NewAssistantService(service.NewClassifierPipeline(nil, nil, 0), service.NewCatalogService(), repo)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAssistantController_Query(t *testing.T) {
	c := NewAssistantController(newAssistant(repository.NewMemoryListRepository()), false)

	req := httptest.NewRequest(http.MethodPost, "/api/dialogflow/query", strings.NewReader(`{"message":"add 2 bread","sessionId":"test-session"}`))
	rec := httptest.NewRecorder()
	c.Query(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "AddItemIntent", body["intent"])
	assert.Equal(t, "add", body["action"])
	assert.Equal(t, "Added 2 bread(s) to your list.", body["responseMessage"])
	assert.Equal(t, "fallback", body["source"])

	data, _ := body["data"].(map[string]any)
	assert.Equal(t, "bakery", data["category"])
}

func TestAssistantController_QueryUnrecognized(t *testing.T) {
	c := NewAssistantController(newAssistant(repository.NewMemoryListRepository()), false)

	req := httptest.NewRequest(http.MethodPost, "/api/dialogflow/query", strings.NewReader(`{"message":"test message","sessionId":"test-session"}`))
	rec := httptest.NewRecorder()
	c.Query(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Contains(t, body, "intent")
	assert.Contains(t, body, "responseMessage")
}

func TestAssistantController_QueryRequiresMessage(t *testing.T) {
	c := NewAssistantController(newAssistant(repository.NewMemoryListRepository()), false)

	for name, payload := range map[string]string{
		"empty object": `{}`,
		"blank":        `{"message":"   "}`,
		"invalid json": `{"message":`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/dialogflow/query", strings.NewReader(payload))
			rec := httptest.NewRecorder()
			c.Query(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Message is required", decode[models.ErrorResponse](t, rec).Error)
		})
	}
}

func TestAssistantController_QueryStorageFailure(t *testing.T) {
	tests := []struct {
		name         string
		exposeErrors bool
		wantMessage  string
	}{
		{"production hides details", false, "Something went wrong"},
		{"development shows details", true, "failed to load list: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAssistantController(newAssistant(brokenRepository{}), tt.exposeErrors)

			req := httptest.NewRequest(http.MethodPost, "/api/dialogflow/query", strings.NewReader(`{"message":"show my list"}`))
			rec := httptest.NewRecorder()
			c.Query(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decode[models.ErrorResponse](t, rec)
			assert.Equal(t, "Internal server error", body.Error)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestAssistantController_QueryUsage(t *testing.T) {
	c := NewAssistantController(newAssistant(repository.NewMemoryListRepository()), false)

	rec := httptest.NewRecorder()
	c.QueryUsage(rec, httptest.NewRequest(http.MethodGet, "/api/dialogflow/query", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[queryUsageResponse](t, rec)
	assert.Equal(t, http.MethodPost, body.Example.Method)
	assert.Equal(t, "add milk", body.Example.Body.Message)
}

// withURLParam routes the request through chi so URLParam resolves
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestListController_Lifecycle(t *testing.T) {
	c := NewListController(newAssistant(repository.NewMemoryListRepository()), false)

	// Empty list renders as []
	rec := httptest.NewRecorder()
	c.GetList(rec, httptest.NewRequest(http.MethodGet, "/api/list", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	c.AddItem(rec, httptest.NewRequest(http.MethodPost, "/api/list", strings.NewReader(`{"name":"test item","quantity":2,"category":"test"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.ListItem](t, rec)
	assert.Equal(t, "test item", created.Name)
	assert.Equal(t, 2, created.Quantity)
	assert.Equal(t, "test", created.Category)
	assert.NotEmpty(t, created.ID)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Minute)

	rec = httptest.NewRecorder()
	c.GetList(rec, httptest.NewRequest(http.MethodGet, "/api/list", nil))
	items := decode[[]models.ListItem](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	rec = httptest.NewRecorder()
	c.DeleteItem(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/list/"+created.ID, nil), "id", created.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Item deleted", decode[models.DeleteListItemResponse](t, rec).Message)

	rec = httptest.NewRecorder()
	c.GetList(rec, httptest.NewRequest(http.MethodGet, "/api/list", nil))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListController_AddItemDefaults(t *testing.T) {
	c := NewListController(newAssistant(repository.NewMemoryListRepository()), false)

	rec := httptest.NewRecorder()
	c.AddItem(rec, httptest.NewRequest(http.MethodPost, "/api/list", strings.NewReader(`{"name":"chips"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.ListItem](t, rec)
	assert.Equal(t, 1, created.Quantity)
	assert.Equal(t, "uncategorized", created.Category)
}

func TestListController_AddItemValidation(t *testing.T) {
	c := NewListController(newAssistant(repository.NewMemoryListRepository()), false)

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"missing name", `{"quantity":1}`, "name is required"},
		{"blank name", `{"name":"  "}`, "name is required"},
		{"invalid json", `not json`, "Invalid request body"},
		{"wrong type", `{"name":"milk","quantity":"two"}`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.AddItem(rec, httptest.NewRequest(http.MethodPost, "/api/list", strings.NewReader(tt.payload)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decode[models.ErrorResponse](t, rec).Error)
		})
	}
}

func TestListController_DeleteUnknownItem(t *testing.T) {
	c := NewListController(newAssistant(repository.NewMemoryListRepository()), false)

	rec := httptest.NewRecorder()
	c.DeleteItem(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/list/nope", nil), "id", "nope"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	c.DeleteItem(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/list/", nil), "id", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListController_StorageFailure(t *testing.T) {
	c := NewListController(newAssistant(brokenRepository{}), false)

	rec := httptest.NewRecorder()
	c.GetList(rec, httptest.NewRequest(http.MethodGet, "/api/list", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong", decode[models.ErrorResponse](t, rec).Message)
}

func TestCatalogController_Search(t *testing.T) {
	c := NewCatalogController(service.NewCatalogService())

	tests := []struct {
		name   string
		query  string
		status int
		want   []string
	}{
		{"all items", "", http.StatusOK, nil},
		{"by query", "?q=toothpaste&maxPrice=75", http.StatusOK, []string{"sku-toothpaste-2", "sku-toothpaste-3"}},
		{"by brand", "?brand=amul", http.StatusOK, []string{"sku-milk-1"}},
		{"by category and min price", "?category=staples&minPrice=700", http.StatusOK, []string{"sku-rice-2"}},
		{"no match", "?q=caviar", http.StatusOK, []string{}},
		{"bad min price", "?minPrice=cheap", http.StatusBadRequest, nil},
		{"bad max price", "?maxPrice=lots", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.Search(rec, httptest.NewRequest(http.MethodGet, "/api/catalog"+tt.query, nil))

			require.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				assert.NotEmpty(t, decode[models.ErrorResponse](t, rec).Error)
				return
			}

			items := decode[[]models.CatalogItem](t, rec)
			if tt.want == nil {
				assert.Len(t, items, 13)
				return
			}
			ids := make([]string, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

type fakeStoreStatus struct {
	backend  string
	degraded bool
}

func (f fakeStoreStatus) Backend() string { return f.backend }
func (f fakeStoreStatus) Degraded() bool  { return f.degraded }

func TestHealthController_Health(t *testing.T) {
	tests := []struct {
		name  string
		store StoreStatus
		want  string
	}{
		{"memory", fakeStoreStatus{backend: "memory", degraded: true}, "memory"},
		{"postgres", fakeStoreStatus{backend: "postgres"}, "postgres"},
		{"postgres degraded", fakeStoreStatus{backend: "postgres", degraded: true}, "postgres (degraded)"},
		{"no store", nil, "memory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewHealthController("test", tt.store, "fallback")
			c.now = func() time.Time { return time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC) }

			rec := httptest.NewRecorder()
			c.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			body := decode[models.HealthResponse](t, rec)
			assert.True(t, body.OK)
			assert.Equal(t, "Server is running!", body.Message)
			assert.Equal(t, "2026-10-14T09:30:00Z", body.Timestamp)
			assert.Equal(t, "test", body.Environment)
			assert.Equal(t, tt.want, body.Store)
			assert.Equal(t, "fallback", body.Classifier)
		})
	}
}

func TestHealthController_RootAndPing(t *testing.T) {
	c := NewHealthController("development", nil, "fallback")

	rec := httptest.NewRecorder()
	c.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	info := decode[serviceInfo](t, rec)
	assert.Equal(t, "Voice Command Shopping Assistant API", info.Message)
	assert.Equal(t, "/api/dialogflow/query", info.Endpoints["dialogflow"])

	rec = httptest.NewRecorder()
	c.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
