// Package handler содержит HTTP обработчики Transport Service.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/saga-participants/pkg/logger"
	"example.com/saga-participants/services/transport/internal/domain"
	"example.com/saga-participants/services/transport/internal/service"
)

// TransportHandler — обработчик операций участника саги по перевозчикам.
type TransportHandler struct {
	transportService service.TransportService
}

// NewTransportHandler создаёт новый обработчик назначений.
func NewTransportHandler(transportService service.TransportService) *TransportHandler {
	return &TransportHandler{
		transportService: transportService,
	}
}

// === Request/Response DTOs ===
// Формы зафиксированы контрактом участника.

// ErrorResponse — стандартный формат ошибки API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AssignCarrierRequest — запрос на назначение перевозчика.
// orderId опционален: при отсутствии сервис генерирует его сам.
type AssignCarrierRequest struct {
	OrderID string `json:"orderId"`
}

// CarrierView — назначение в wire-формате.
type CarrierView struct {
	CarrierID string  `json:"carrierId"`
	Assigned  bool    `json:"assigned"`
	Status    *string `json:"status,omitempty"`
}

// AssignCarrierResponse — ответ на назначение перевозчика.
type AssignCarrierResponse struct {
	Carrier CarrierView `json:"carrier"`
}

// CancelAssignmentRequest — запрос на компенсацию назначения.
type CancelAssignmentRequest struct {
	OrderID string `json:"orderId"`
}

// CancelAssignmentResponse — ответ на компенсацию назначения.
type CancelAssignmentResponse struct {
	Status    string `json:"status"`
	CarrierID string `json:"carrierId"`
	OrderID   string `json:"orderId"`
}

// AssignmentView — элемент ответа интроспекции.
type AssignmentView struct {
	Carrier CarrierView `json:"carrier"`
}

// === Handlers ===

// AssignCarrier назначает перевозчика на заказ.
// POST /assign_carrier
func (h *TransportHandler) AssignCarrier(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	var req AssignCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Msg("Невалидный запрос assign_carrier")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Невалидные данные запроса",
		})
		return
	}

	assignment, err := h.transportService.AssignCarrier(ctx, req.OrderID)
	if err != nil {
		log.Error().Err(err).Msg("Ошибка назначения перевозчика")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Внутренняя ошибка сервера",
		})
		return
	}

	c.JSON(http.StatusOK, AssignCarrierResponse{
		Carrier: assignmentToView(assignment),
	})
}

// CancelAssignment отменяет назначение перевозчика (компенсация).
// POST /cancel_assignment
//
// Всегда отвечает 200: компенсация неизвестного назначения — определённое
// no-op поведение с carrierId="UNKNOWN", а не ошибка.
func (h *TransportHandler) CancelAssignment(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	var req CancelAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Msg("Невалидный запрос cancel_assignment")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Невалидные данные запроса",
		})
		return
	}

	result, err := h.transportService.CancelAssignment(ctx, req.OrderID)
	if err != nil {
		log.Error().Err(err).Msg("Ошибка отмены назначения")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Внутренняя ошибка сервера",
		})
		return
	}

	c.JSON(http.StatusOK, CancelAssignmentResponse{
		Status:    result.Status,
		CarrierID: result.CarrierID,
		OrderID:   result.OrderID,
	})
}

// ListAssignments возвращает полное содержимое хранилища назначений.
// GET /assignments
func (h *TransportHandler) ListAssignments(c *gin.Context) {
	assignments := h.transportService.ListAssignments(c.Request.Context())

	out := make(map[string]AssignmentView, len(assignments))
	for orderID, a := range assignments {
		out[orderID] = AssignmentView{Carrier: assignmentToView(&a)}
	}

	c.JSON(http.StatusOK, out)
}

// assignmentToView преобразует domain.Assignment в wire-формат.
func assignmentToView(a *domain.Assignment) CarrierView {
	return CarrierView{
		CarrierID: a.CarrierID,
		Assigned:  a.Assigned,
		Status:    a.Status,
	}
}
