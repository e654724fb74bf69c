// Package handler содержит unit тесты HTTP обработчиков Label Service.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/saga-participants/pkg/faults"
	"example.com/saga-participants/services/label/internal/domain"
	"example.com/saga-participants/services/label/internal/repository"
	"example.com/saga-participants/services/label/internal/service"
)

// setupTestRouter создаёт Gin router на свежем хранилище с заданной
// вероятностью сбоя. Seed фиксирован для воспроизводимости.
func setupTestRouter(rate float64) (*gin.Engine, repository.LabelRepository) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewLabelRepository()
	injector := faults.New(rate, faults.WithRand(rand.New(rand.NewSource(1))))
	h := NewLabelHandler(service.NewLabelService(repo, injector))

	r := gin.New()
	r.POST("/create_label", h.CreateLabel)
	r.POST("/get_label", h.GetLabel)
	r.POST("/cancel_label", h.CancelLabel)
	r.GET("/label", h.ListLabels)

	return r, repo
}

// doJSON выполняет запрос с JSON телом и возвращает recorder.
func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// =====================================
// Тесты /create_label
// =====================================

func TestCreateLabel_Success(t *testing.T) {
	r, _ := setupTestRouter(0)

	w := doJSON(r, http.MethodPost, "/create_label", CreateLabelRequest{
		RequestData: CreateLabelData{Label: "LABEL-100", Desc: "тестовая"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp CreateLabelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Label.Created)
	assert.Equal(t, 4, resp.Label.LabelID)
}

func TestCreateLabel_MissingLabel(t *testing.T) {
	r, repo := setupTestRouter(0)

	w := doJSON(r, http.MethodPost, "/create_label", CreateLabelRequest{
		RequestData: CreateLabelData{Desc: "без этикетки"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_request", resp.Error)
	assert.Equal(t, 3, repo.Count(context.Background()), "хранилище не изменилось")
}

func TestCreateLabel_InjectedFailure(t *testing.T) {
	r, repo := setupTestRouter(1)

	w := doJSON(r, http.MethodPost, "/create_label", CreateLabelRequest{
		RequestData: CreateLabelData{Label: "LABEL-NEVER"},
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "injected_failure", resp.Error)
	assert.Equal(t, 3, repo.Count(context.Background()), "инжектированный сбой не мутирует хранилище")
}

func TestCreateLabel_MalformedJSON(t *testing.T) {
	r, _ := setupTestRouter(0)

	req := httptest.NewRequest(http.MethodPost, "/create_label", bytes.NewBufferString("{не json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================
// Тесты /get_label
// =====================================

func TestGetLabel_Success(t *testing.T) {
	r, _ := setupTestRouter(0)

	w := doJSON(r, http.MethodPost, "/get_label", GetLabelRequest{
		RequestData: GetLabelData{ID: 1},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp GetLabelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Label.OK)
	assert.Equal(t, domain.Label{ID: 1, Label: "LABEL-001", Desc: "Этикетка для внутренних отправлений"}, resp.Label.Label)
}

func TestGetLabel_NotFound(t *testing.T) {
	// rate=1: NotFound имеет приоритет над инжекцией сбоя.
	r, repo := setupTestRouter(1)

	w := doJSON(r, http.MethodPost, "/get_label", GetLabelRequest{
		RequestData: GetLabelData{ID: 999},
	})

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error)
	assert.Equal(t, 3, repo.Count(context.Background()), "хранилище не изменилось")
}

func TestGetLabel_MissingID(t *testing.T) {
	r, _ := setupTestRouter(0)

	w := doJSON(r, http.MethodPost, "/get_label", GetLabelRequest{})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_request", resp.Error)
}

// =====================================
// Тесты /cancel_label
// =====================================

func TestCancelLabel_Unsupported(t *testing.T) {
	r, _ := setupTestRouter(0)

	w := doJSON(r, http.MethodPost, "/cancel_label", CancelLabelRequest{
		RequestData: GetLabelData{ID: 4},
	})

	require.Equal(t, http.StatusNotImplemented, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unsupported_operation", resp.Error)
}

// =====================================
// Тесты интроспекции и health
// =====================================

func TestListLabels(t *testing.T) {
	r, _ := setupTestRouter(0)

	// Создаём этикетку и убеждаемся, что интроспекция её видит.
	doJSON(r, http.MethodPost, "/create_label", CreateLabelRequest{
		RequestData: CreateLabelData{Label: "LABEL-100"},
	})

	w := doJSON(r, http.MethodGet, "/label", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var labels []domain.Label
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &labels))
	require.Len(t, labels, 4)
	assert.Equal(t, "LABEL-100", labels[3].Label)
}

func TestHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewLabelRepository()
	injector := faults.New(0)
	router := NewRouter(RouterConfig{
		LabelService: service.NewLabelService(repo, injector),
		ServiceName:  "label-service",
	})

	w := doJSON(router.Engine(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "label-service", health["service"])
	assert.Equal(t, "healthy", health["status"])

	w = doJSON(router.Engine(), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
