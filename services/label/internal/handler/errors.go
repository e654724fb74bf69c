// Package handler содержит HTTP обработчики Label Service.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/saga-participants/pkg/logger"
	"example.com/saga-participants/services/label/internal/domain"
)

// ErrorResponse — стандартный формат ошибки API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleDomainError преобразует доменную ошибку в HTTP ответ.
// Используется всеми handlers для единообразной обработки ошибок.
func HandleDomainError(c *gin.Context, err error, method string) {
	log := logger.FromContext(c.Request.Context())

	switch {
	case errors.Is(err, domain.ErrLabelRequired), errors.Is(err, domain.ErrLabelIDRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrLabelNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInjectedFailure):
		// 500 — оркестратор воспринимает участника как упавшую зависимость
		// и решает сам: повторить действие или компенсировать сагу.
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "injected_failure",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrCompensationUnsupported):
		c.JSON(http.StatusNotImplemented, ErrorResponse{
			Error:   "unsupported_operation",
			Message: err.Error(),
		})
	default:
		log.Error().Err(err).Str("method", method).Msg("Внутренняя ошибка")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Внутренняя ошибка сервера",
		})
	}
}
