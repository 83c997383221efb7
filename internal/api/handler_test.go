package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bakery-service/config"
	"bakery-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// No store, broker, or mailer behind these services: the tests below
	// only exercise paths that fail validation before reaching them.
	handler := NewHandler(
		service.NewOrderService(nil, nil, nil, 3000),
		service.NewCatalogService(nil, nil),
		service.NewContactService(nil, nil),
		config.AdminConfig{Username: "admin", Password: "saejaedang-test"},
	)

	router := gin.New()
	handler.SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRootEndpoint(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SaeJaeDang")
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter()

	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/ready", nil).Code)
}

func TestGetCategories(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/categories", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var categories []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 3)
	assert.Equal(t, "bread", categories[0]["id"])
	assert.Equal(t, "ricecake", categories[1]["id"])
	assert.Equal(t, "traditional", categories[2]["id"])
}

func TestGetInfo(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/info", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "saejaedang")
}

func TestGetItemRejectsBadID(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsMalformedBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderReturnsFieldErrors(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []interface{}{},
		"customerInfo": map[string]string{
			"name":  "김",
			"phone": "not-a-phone!",
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotEmpty(t, resp.Errors)

	fields := make([]string, len(resp.Errors))
	for i, fe := range resp.Errors {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "items")
	assert.Contains(t, fields, "customerInfo.name")
	assert.Contains(t, fields, "customerInfo.phone")
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodPatch, "/api/orders/1/status", map[string]string{
		"status": "teleported",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrdersRejectsUnknownStatusFilter(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodGet, "/api/orders?status=pending,bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitContactReturnsFieldErrors(t *testing.T) {
	w := doJSON(t, newTestRouter(), http.MethodPost, "/api/contact", map[string]string{
		"name":    "김",
		"email":   "not-an-email",
		"message": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
}

func TestSubmitContactAcceptsValidMessage(t *testing.T) {
	// No broker or mailer is configured; dispatch is a logged no-op and
	// the submission still succeeds.
	w := doJSON(t, newTestRouter(), http.MethodPost, "/api/contact", map[string]string{
		"name":    "김민수",
		"email":   "minsu@example.com",
		"message": "한과 세트 대량 주문이 가능한가요?",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"success\":true")
}

func TestAdminLogin(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{
		"username": "admin",
		"password": "saejaedang-test",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	w = doJSON(t, router, http.MethodPost, "/api/admin/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
