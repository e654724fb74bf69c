// Package service содержит бизнес-логику Transport Service.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"example.com/saga-participants/pkg/logger"
	"example.com/saga-participants/pkg/metrics"
	"example.com/saga-participants/services/transport/internal/domain"
	"example.com/saga-participants/services/transport/internal/repository"
)

// serviceName — значение метки service в метриках.
const serviceName = "transport-service"

// Имена операций участника для метрик.
const (
	actionAssignCarrier    = "assign_carrier"
	actionCancelAssignment = "cancel_assignment"
)

// unknownCarrierID возвращается компенсацией для неизвестного orderId.
const unknownCarrierID = "UNKNOWN"

// CancelAssignmentResult — результат компенсации назначения.
type CancelAssignmentResult struct {
	Status    string // Всегда "cancelled"
	CarrierID string // Исходный carrierId или "UNKNOWN"
	OrderID   string // orderId из запроса, как есть
}

// TransportService — бизнес-логика участника саги по назначению перевозчиков.
//
// Действие assign_carrier выполняется без инжекции сбоев: назначение всегда
// успешно, чтобы happy path демонстрации был детерминированным. Ненадёжный
// путь демонстрируют компенсация и Label Service.
type TransportService interface {
	// AssignCarrier назначает перевозчика на заказ.
	// При пустом orderID сервис генерирует его сам — документированное,
	// но спорное поведение: ключ идемпотентности должен выбирать
	// оркестратор. Сохранено как есть.
	AssignCarrier(ctx context.Context, orderID string) (*domain.Assignment, error)

	// CancelAssignment отменяет назначение (компенсация).
	// Неизвестный orderID не считается ошибкой: ответ успешный
	// с CarrierID="UNKNOWN". Повторная отмена оставляет то же
	// терминальное состояние.
	CancelAssignment(ctx context.Context, orderID string) (*CancelAssignmentResult, error)

	// ListAssignments возвращает полное содержимое хранилища (интроспекция).
	ListAssignments(ctx context.Context) map[string]domain.Assignment
}

// transportService — реализация TransportService.
type transportService struct {
	repo repository.AssignmentRepository

	// Источник случайности для генерации orderId/carrierId.
	// rand.Rand не потокобезопасен — защищаем мьютексом.
	mu  sync.Mutex
	rnd *rand.Rand
}

// Option — функциональная опция для настройки сервиса.
type Option func(*transportService)

// WithRand задаёт источник случайности для генерации идентификаторов.
// В тестах передаётся rand с фиксированным seed.
func WithRand(rnd *rand.Rand) Option {
	return func(s *transportService) {
		s.rnd = rnd
	}
}

// NewTransportService создаёт сервис назначения перевозчиков.
func NewTransportService(repo repository.AssignmentRepository, opts ...Option) TransportService {
	s := &transportService{
		repo: repo,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AssignCarrier назначает перевозчика и сохраняет назначение по orderId.
func (s *transportService) AssignCarrier(ctx context.Context, orderID string) (*domain.Assignment, error) {
	log := logger.FromContext(ctx)

	if orderID == "" {
		orderID = s.generateOrderID()
		log.Debug().Str("order_id", orderID).Msg("orderId отсутствует в запросе, сгенерирован")
	}

	assignment := domain.NewAssignment(orderID, s.generateCarrierID())
	s.repo.Upsert(ctx, assignment)

	log.Info().
		Str("order_id", assignment.OrderID).
		Str("carrier_id", assignment.CarrierID).
		Msg("Перевозчик назначен")
	metrics.RecordAction(serviceName, actionAssignCarrier, "success")

	return assignment, nil
}

// CancelAssignment отменяет назначение, терпимо к неизвестным целям.
func (s *transportService) CancelAssignment(ctx context.Context, orderID string) (*CancelAssignmentResult, error) {
	log := logger.FromContext(ctx)

	assignment, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, domain.ErrAssignmentNotFound) {
			return nil, err
		}

		// Оркестратор может компенсировать действие, которое так и не
		// выполнилось — отвечаем успехом, состояние не меняем.
		log.Info().Str("order_id", orderID).Msg("Компенсация неизвестного назначения — no-op")
		metrics.RecordAction(serviceName, actionCancelAssignment, "unknown_target")

		return &CancelAssignmentResult{
			Status:    "cancelled",
			CarrierID: unknownCarrierID,
			OrderID:   orderID,
		}, nil
	}

	assignment.Cancel()
	s.repo.Upsert(ctx, assignment)

	log.Info().
		Str("order_id", orderID).
		Str("carrier_id", assignment.CarrierID).
		Msg("Назначение перевозчика отменено")
	metrics.RecordAction(serviceName, actionCancelAssignment, "success")

	return &CancelAssignmentResult{
		Status:    "cancelled",
		CarrierID: assignment.CarrierID,
		OrderID:   orderID,
	}, nil
}

// ListAssignments возвращает полное содержимое хранилища.
func (s *transportService) ListAssignments(ctx context.Context) map[string]domain.Assignment {
	return s.repo.ListAll(ctx)
}

// generateOrderID генерирует orderId вида "ORD-1234".
func (s *transportService) generateOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fmt.Sprintf("ORD-%d", 1000+s.rnd.Intn(9000))
}

// generateCarrierID генерирует carrierId вида "CRR-42-FastShip".
func (s *transportService) generateCarrierID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fmt.Sprintf("CRR-%d-FastShip", 10+s.rnd.Intn(90))
}
