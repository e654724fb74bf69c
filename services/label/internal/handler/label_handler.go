// Package handler содержит HTTP обработчики Label Service.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/saga-participants/pkg/logger"
	"example.com/saga-participants/services/label/internal/domain"
	"example.com/saga-participants/services/label/internal/service"
)

// LabelHandler — обработчик операций участника саги по этикеткам.
type LabelHandler struct {
	labelService service.LabelService
}

// NewLabelHandler создаёт новый обработчик этикеток.
func NewLabelHandler(labelService service.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// === Request/Response DTOs ===
// Формы запросов и ответов зафиксированы контрактом участника:
// оркестратор разбирает их при ветвлении саги.

// CreateLabelRequest — запрос на создание этикетки.
type CreateLabelRequest struct {
	RequestData CreateLabelData `json:"request_data"`
}

// CreateLabelData — полезная нагрузка саги для create_label.
type CreateLabelData struct {
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

// CreateLabelResponse — ответ на создание этикетки.
type CreateLabelResponse struct {
	Label CreateLabelResult `json:"label"`
}

// CreateLabelResult — результат создания в ответе.
type CreateLabelResult struct {
	Created bool `json:"created"`
	LabelID int  `json:"labelId"`
}

// GetLabelRequest — запрос на получение этикетки.
type GetLabelRequest struct {
	RequestData GetLabelData `json:"request_data"`
}

// GetLabelData — полезная нагрузка саги для get_label.
type GetLabelData struct {
	ID int `json:"id"`
}

// GetLabelResponse — ответ на получение этикетки.
type GetLabelResponse struct {
	Label GetLabelResult `json:"label"`
}

// GetLabelResult — найденная этикетка в ответе.
type GetLabelResult struct {
	Label domain.Label `json:"label"`
	OK    bool         `json:"ok"`
}

// CancelLabelRequest — запрос на компенсацию создания этикетки.
type CancelLabelRequest struct {
	RequestData GetLabelData `json:"request_data"`
}

// === Handlers ===

// CreateLabel создаёт новую этикетку.
// POST /create_label
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Msg("Невалидный запрос create_label")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Невалидные данные запроса",
		})
		return
	}

	result, err := h.labelService.CreateLabel(ctx, req.RequestData.Label, req.RequestData.Desc)
	if err != nil {
		HandleDomainError(c, err, "CreateLabel")
		return
	}

	c.JSON(http.StatusOK, CreateLabelResponse{
		Label: CreateLabelResult{
			Created: result.Created,
			LabelID: result.LabelID,
		},
	})
}

// GetLabel возвращает существующую этикетку.
// POST /get_label
func (h *LabelHandler) GetLabel(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	var req GetLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Msg("Невалидный запрос get_label")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Невалидные данные запроса",
		})
		return
	}

	label, err := h.labelService.GetLabel(ctx, req.RequestData.ID)
	if err != nil {
		HandleDomainError(c, err, "GetLabel")
		return
	}

	c.JSON(http.StatusOK, GetLabelResponse{
		Label: GetLabelResult{
			Label: *label,
			OK:    true,
		},
	})
}

// CancelLabel — компенсация create_label.
// POST /cancel_label
//
// Контракт участника не определяет undo для create_label. Пробел обозначен
// явным 501 вместо выдуманной семантики компенсации: оркестратор увидит,
// что откатить этот шаг нельзя.
func (h *LabelHandler) CancelLabel(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())
	log.Warn().Msg("Запрошена неподдерживаемая компенсация create_label")

	HandleDomainError(c, domain.ErrCompensationUnsupported, "CancelLabel")
}

// ListLabels возвращает полное содержимое хранилища этикеток.
// GET /label
//
// Интроспекция для отладки и тестовых проверок: без пагинации и контроля
// доступа — это симуляционный сервис, а не production data API.
func (h *LabelHandler) ListLabels(c *gin.Context) {
	labels := h.labelService.ListLabels(c.Request.Context())
	c.JSON(http.StatusOK, labels)
}
