// Package handler содержит HTTP обработчики Label Service.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"example.com/saga-participants/pkg/metrics"
	"example.com/saga-participants/pkg/middleware"
	"example.com/saga-participants/services/label/internal/service"
)

// ReadinessChecker — функция проверки готовности сервиса.
type ReadinessChecker func(ctx context.Context) error

// Router — HTTP роутер Label Service.
type Router struct {
	engine         *gin.Engine
	labelService   service.LabelService
	serviceName    string
	readinessCheck ReadinessChecker
}

// RouterConfig — параметры для создания роутера.
type RouterConfig struct {
	LabelService   service.LabelService
	ServiceName    string           // Имя сервиса для /health и метрик
	ReadinessCheck ReadinessChecker // Опциональная проверка готовности для /readyz
	Debug          bool             // Режим отладки Gin
}

// NewRouter создаёт и настраивает HTTP роутер.
func NewRouter(cfg RouterConfig) *Router {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())

	// OpenTelemetry tracing — spans для Jaeger
	engine.Use(otelgin.Middleware(cfg.ServiceName))

	// Prometheus метрики — requests_total, request_duration_seconds
	engine.Use(metrics.GinMetricsMiddleware(cfg.ServiceName))

	// Trace ID / Correlation ID + логирование запросов
	engine.Use(middleware.NewTracingMiddleware().Handle())

	r := &Router{
		engine:         engine,
		labelService:   cfg.LabelService,
		serviceName:    cfg.ServiceName,
		readinessCheck: cfg.ReadinessCheck,
	}

	r.setupRoutes()
	return r
}

// setupRoutes настраивает маршруты участника.
func (r *Router) setupRoutes() {
	labelHandler := NewLabelHandler(r.labelService)

	// Действия саги
	r.engine.POST("/create_label", labelHandler.CreateLabel)
	r.engine.POST("/get_label", labelHandler.GetLabel)

	// Компенсация (не поддерживается — отвечает 501)
	r.engine.POST("/cancel_label", labelHandler.CancelLabel)

	// Интроспекция
	r.engine.GET("/label", labelHandler.ListLabels)

	// Health endpoints
	r.engine.GET("/health", r.healthCheck)
	r.engine.GET("/healthz", r.livenessCheck)
	r.engine.GET("/readyz", r.readinessCheckHandler)
}

// Engine возвращает Gin engine для запуска сервера.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// healthCheck — проверка работоспособности сервиса.
// Форма ответа зафиксирована контрактом: {"service": ..., "status": "healthy"}.
func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": r.serviceName,
		"status":  "healthy",
	})
}

// livenessCheck — liveness probe для Kubernetes.
func (r *Router) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// readinessCheckHandler — readiness probe для Kubernetes.
func (r *Router) readinessCheckHandler(c *gin.Context) {
	// Если ReadinessChecker не установлен — считаем сервис готовым
	if r.readinessCheck == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := r.readinessCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
