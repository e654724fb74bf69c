// Package service содержит бизнес-логику Label Service.
package service

import (
	"context"

	"example.com/saga-participants/pkg/faults"
	"example.com/saga-participants/pkg/logger"
	"example.com/saga-participants/pkg/metrics"
	"example.com/saga-participants/services/label/internal/domain"
	"example.com/saga-participants/services/label/internal/repository"
)

// serviceName — значение метки service в метриках.
const serviceName = "label-service"

// Имена операций участника для метрик.
const (
	actionCreateLabel = "create_label"
	actionGetLabel    = "get_label"
)

// CreateLabelResult — результат создания этикетки.
// Оркестратор ветвится по этому результату при продолжении саги.
type CreateLabelResult struct {
	LabelID int  // Назначенный id этикетки
	Created bool // Всегда true при успехе
}

// LabelService — бизнес-логика участника саги по этикеткам.
//
// Порядок проверок фиксирован контрактом участника: сначала валидация,
// затем проверка существования, затем инжекция сбоя и только после неё —
// мутация хранилища. Инжектированный сбой никогда не меняет состояние,
// поэтому оркестратор может безопасно повторять действие.
type LabelService interface {
	// CreateLabel создаёт этикетку.
	// Возвращает domain.ErrLabelRequired при пустом label,
	// domain.ErrInjectedFailure при симулированном сбое (без мутации).
	CreateLabel(ctx context.Context, label, desc string) (*CreateLabelResult, error)

	// GetLabel возвращает этикетку по id.
	// Возвращает domain.ErrLabelIDRequired при отсутствующем id,
	// domain.ErrLabelNotFound если этикетки нет,
	// domain.ErrInjectedFailure при симулированном сбое (чтение тоже
	// может "упасть" — участник изображает ненадёжную зависимость).
	GetLabel(ctx context.Context, id int) (*domain.Label, error)

	// ListLabels возвращает полное содержимое хранилища (интроспекция).
	ListLabels(ctx context.Context) []domain.Label
}

// labelService — реализация LabelService.
type labelService struct {
	repo     repository.LabelRepository
	injector *faults.Injector
}

// NewLabelService создаёт сервис этикеток.
// Injector передаётся снаружи: в тестах используется детерминированный
// источник случайности.
func NewLabelService(repo repository.LabelRepository, injector *faults.Injector) LabelService {
	return &labelService{
		repo:     repo,
		injector: injector,
	}
}

// CreateLabel создаёт этикетку с вероятностным сбоем до мутации.
func (s *labelService) CreateLabel(ctx context.Context, label, desc string) (*CreateLabelResult, error) {
	log := logger.FromContext(ctx)

	// 1. Валидация — строго до инжекции сбоя: невалидный запрос всегда
	// получает ValidationError, независимо от решения инжектора.
	if label == "" {
		log.Warn().Msg("Запрос create_label без поля 'label'")
		metrics.RecordAction(serviceName, actionCreateLabel, "validation_error")
		return nil, domain.ErrLabelRequired
	}

	// 2. Инжекция сбоя — до обращения к хранилищу.
	if s.injector.ShouldFail() {
		log.Warn().
			Str("label", label).
			Float64("failure_rate", s.injector.Rate()).
			Msg("Инжектирован сбой create_label")
		metrics.RecordInjectedFailure(serviceName, actionCreateLabel)
		metrics.RecordAction(serviceName, actionCreateLabel, "injected_failure")
		return nil, domain.ErrInjectedFailure
	}

	// 3. Мутация хранилища.
	created := s.repo.Insert(ctx, label, desc)

	log.Info().
		Int("label_id", created.ID).
		Str("label", created.Label).
		Msg("Этикетка создана")
	metrics.RecordAction(serviceName, actionCreateLabel, "success")

	return &CreateLabelResult{
		LabelID: created.ID,
		Created: true,
	}, nil
}

// GetLabel возвращает этикетку, пропустив запрос через ворота инжектора.
func (s *labelService) GetLabel(ctx context.Context, id int) (*domain.Label, error) {
	log := logger.FromContext(ctx)

	if id == 0 {
		log.Warn().Msg("Запрос get_label без поля 'id'")
		metrics.RecordAction(serviceName, actionGetLabel, "validation_error")
		return nil, domain.ErrLabelIDRequired
	}

	label, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn().Int("label_id", id).Msg("Этикетка не найдена")
		metrics.RecordAction(serviceName, actionGetLabel, "not_found")
		return nil, err
	}

	if s.injector.ShouldFail() {
		log.Warn().
			Int("label_id", id).
			Float64("failure_rate", s.injector.Rate()).
			Msg("Инжектирован сбой get_label")
		metrics.RecordInjectedFailure(serviceName, actionGetLabel)
		metrics.RecordAction(serviceName, actionGetLabel, "injected_failure")
		return nil, domain.ErrInjectedFailure
	}

	metrics.RecordAction(serviceName, actionGetLabel, "success")
	return label, nil
}

// ListLabels возвращает полное содержимое хранилища.
func (s *labelService) ListLabels(ctx context.Context) []domain.Label {
	return s.repo.ListAll(ctx)
}
