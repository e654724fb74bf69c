// Package handler содержит unit тесты HTTP обработчиков Transport Service.
package handler

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/saga-participants/services/transport/internal/repository"
	"example.com/saga-participants/services/transport/internal/service"
)

// setupTestRouter создаёт Gin router на свежем хранилище.
// Seed фиксирован — генерируемые идентификаторы воспроизводимы.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewAssignmentRepository()
	svc := service.NewTransportService(repo, service.WithRand(rand.New(rand.NewSource(1))))
	h := NewTransportHandler(svc)

	r := gin.New()
	r.POST("/assign_carrier", h.AssignCarrier)
	r.POST("/cancel_assignment", h.CancelAssignment)
	r.GET("/assignments", h.ListAssignments)

	return r
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

func TestAssignCarrier(t *testing.T) {
	r := setupTestRouter()

	w := doJSON(r, http.MethodPost, "/assign_carrier", AssignCarrierRequest{OrderID: "ORD-1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AssignCarrierResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^CRR-\d{2}-FastShip$`, resp.Carrier.CarrierID)
	assert.True(t, resp.Carrier.Assigned)
	assert.Nil(t, resp.Carrier.Status)
}

func TestAssignCarrier_EmptyBody(t *testing.T) {
	r := setupTestRouter()

	// orderId опционален — сервис генерирует его сам.
	w := doJSON(r, http.MethodPost, "/assign_carrier", AssignCarrierRequest{})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AssignCarrierResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Carrier.Assigned)
}

// TestSagaFlow проверяет сценарий действие → компенсация → интроспекция.
func TestSagaFlow(t *testing.T) {
	r := setupTestRouter()

	// 1. Действие: назначаем перевозчика.
	w := doJSON(r, http.MethodPost, "/assign_carrier", AssignCarrierRequest{OrderID: "ORD-1"})
	require.Equal(t, http.StatusOK, w.Code)

	var assigned AssignCarrierResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assigned))
	carrierID := assigned.Carrier.CarrierID

	// 2. Компенсация: отменяем назначение.
	w = doJSON(r, http.MethodPost, "/cancel_assignment", CancelAssignmentRequest{OrderID: "ORD-1"})
	require.Equal(t, http.StatusOK, w.Code)

	var cancelled CancelAssignmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, carrierID, cancelled.CarrierID)
	assert.Equal(t, "ORD-1", cancelled.OrderID)

	// 3. Интроспекция: история "был назначен, теперь отменён" видна.
	w = doJSON(r, http.MethodGet, "/assignments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var all map[string]AssignmentView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Contains(t, all, "ORD-1")

	entry := all["ORD-1"]
	assert.Equal(t, carrierID, entry.Carrier.CarrierID)
	assert.False(t, entry.Carrier.Assigned)
	require.NotNil(t, entry.Carrier.Status)
	assert.Equal(t, "CANCELLED", *entry.Carrier.Status)
}

func TestCancelAssignment_UnknownTarget(t *testing.T) {
	r := setupTestRouter()

	w := doJSON(r, http.MethodPost, "/cancel_assignment", CancelAssignmentRequest{OrderID: "ORD-404"})
	require.Equal(t, http.StatusOK, w.Code, "компенсация неизвестной цели — не ошибка")

	var resp CancelAssignmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "UNKNOWN", resp.CarrierID)
	assert.Equal(t, "ORD-404", resp.OrderID)
}

func TestCancelAssignment_Repeated(t *testing.T) {
	r := setupTestRouter()

	doJSON(r, http.MethodPost, "/assign_carrier", AssignCarrierRequest{OrderID: "ORD-1"})

	first := doJSON(r, http.MethodPost, "/cancel_assignment", CancelAssignmentRequest{OrderID: "ORD-1"})
	second := doJSON(r, http.MethodPost, "/cancel_assignment", CancelAssignmentRequest{OrderID: "ORD-1"})

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String(),
		"повторная компенсация возвращает тот же ответ")
}

func TestListAssignments_Empty(t *testing.T) {
	r := setupTestRouter()

	w := doJSON(r, http.MethodGet, "/assignments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewAssignmentRepository()
	router := NewRouter(RouterConfig{
		TransportService: service.NewTransportService(repo),
		ServiceName:      "transport-service",
	})

	w := doJSON(router.Engine(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "transport-service", health["service"])

	w = doJSON(router.Engine(), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
