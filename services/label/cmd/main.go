// Label Service — участник саги, владеющий реестром этикеток.
// Выполняет локальное действие create_label по запросу оркестратора и
// симулирует ненадёжность через вероятностную инжекцию сбоев (FAILURE_RATE).
// Состояние живёт в памяти процесса — это симуляционный сервис.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"example.com/saga-participants/pkg/faults"
	"example.com/saga-participants/pkg/healthcheck"
	"example.com/saga-participants/pkg/logger"
	"example.com/saga-participants/pkg/metrics"
	"example.com/saga-participants/pkg/tracing"
	"example.com/saga-participants/services/label/internal/config"
	"example.com/saga-participants/services/label/internal/handler"
	"example.com/saga-participants/services/label/internal/repository"
	"example.com/saga-participants/services/label/internal/service"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Pretty: cfg.App.LogPretty,
	})

	log := logger.With().Str("service", cfg.App.Name).Logger()

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.HTTP.Port).
		Float64("failure_rate", cfg.Failure.Rate).
		Msg("Запуск Label Service")

	// === Observability: Tracing ===

	shutdownTracing, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.App.Name,
		JaegerEndpoint: cfg.Jaeger.OTLPEndpoint(),
		Enabled:        cfg.Jaeger.Enabled,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Не удалось инициализировать tracing")
	}

	// === Инициализация бизнес-логики ===

	// Хранилище in-memory, заполняется стартовыми этикетками
	labelRepo := repository.NewLabelRepository()

	// Инжектор сбоев с настроенной вероятностью
	injector := faults.New(cfg.Failure.Rate)

	labelService := service.NewLabelService(labelRepo, injector)

	// ReadinessChecker для /readyz — проверяет хранилище
	readinessCheck := healthcheck.Composite(
		func(ctx context.Context) error { return healthcheck.CheckStore(ctx, labelRepo) },
	)

	// === Observability: Metrics ===

	var metricsServer *metrics.Server
	var metricsWg sync.WaitGroup
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(
			cfg.Metrics.Addr(),
			cfg.App.Name,
			metrics.WithReadinessCheck(readinessCheck),
		)
		metricsWg.Add(1)
		go func() {
			defer metricsWg.Done()
			if err := metricsServer.Start(); err != nil {
				log.Error().Err(err).Msg("Ошибка Metrics Server")
			}
		}()
	}

	// === HTTP сервер ===

	router := handler.NewRouter(handler.RouterConfig{
		LabelService:   labelService,
		ServiceName:    cfg.App.Name,
		ReadinessCheck: readinessCheck,
		Debug:          cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router.Engine(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("HTTP сервер запущен")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Ошибка HTTP сервера")
		}
	}()

	// === Graceful Shutdown ===

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Получен сигнал завершения, останавливаем сервер...")

	// Даём 30 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Ошибка при остановке сервера")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Ошибка остановки Metrics Server")
		}
		metricsWg.Wait()
	}

	if shutdownTracing != nil {
		if err := shutdownTracing(ctx); err != nil {
			log.Error().Err(err).Msg("Ошибка остановки Tracing")
		}
	}

	log.Info().Msg("Label Service остановлен")
}
