// Package repository содержит слой доступа к данным Label Service.
package repository

import (
	"context"
	"sync"

	"example.com/saga-participants/services/label/internal/domain"
)

// LabelRepository — хранилище этикеток.
// Состояние намеренно volatile: живёт в памяти процесса и теряется при
// рестарте, что соответствует симуляционному назначению участника.
type LabelRepository interface {
	// Insert назначает следующий id, добавляет этикетку и возвращает её.
	// Не завершается ошибкой.
	Insert(ctx context.Context, label, desc string) *domain.Label

	// GetByID возвращает этикетку по id или domain.ErrLabelNotFound.
	GetByID(ctx context.Context, id int) (*domain.Label, error)

	// ListAll возвращает все этикетки в порядке добавления.
	ListAll(ctx context.Context) []domain.Label

	// Count возвращает текущее число этикеток.
	Count(ctx context.Context) int

	// Ping проверяет, что хранилище отвечает (readiness probe).
	Ping(ctx context.Context) error
}

// memoryLabelRepository — in-memory реализация LabelRepository.
// Все операции проходят через один мьютекс: без единой точки сериализации
// конкурентные create_label могли бы выдать дублирующиеся id.
type memoryLabelRepository struct {
	mu     sync.RWMutex
	labels []domain.Label
	nextID int
}

// seedLabels — стартовый набор этикеток сервиса.
var seedLabels = []domain.Label{
	{ID: 1, Label: "LABEL-001", Desc: "Этикетка для внутренних отправлений"},
	{ID: 2, Label: "LABEL-002", Desc: "Этикетка для международных отправлений"},
	{ID: 3, Label: "LABEL-003", Desc: "Этикетка для экспресс-отправлений"},
}

// NewLabelRepository создаёт in-memory хранилище, заполненное стартовыми
// этикетками. Нумерация id продолжается после последней стартовой.
func NewLabelRepository() LabelRepository {
	labels := make([]domain.Label, len(seedLabels))
	copy(labels, seedLabels)

	return &memoryLabelRepository{
		labels: labels,
		nextID: len(seedLabels) + 1,
	}
}

// Insert добавляет этикетку со следующим id.
// Id монотонно растут и не переиспользуются в течение жизни процесса.
func (r *memoryLabelRepository) Insert(_ context.Context, label, desc string) *domain.Label {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := domain.Label{
		ID:    r.nextID,
		Label: label,
		Desc:  desc,
	}
	r.nextID++
	r.labels = append(r.labels, l)

	return &l
}

// GetByID возвращает копию этикетки по id.
func (r *memoryLabelRepository) GetByID(_ context.Context, id int) (*domain.Label, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.labels {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}

	return nil, domain.ErrLabelNotFound
}

// ListAll возвращает копию всех этикеток в порядке добавления.
func (r *memoryLabelRepository) ListAll(_ context.Context) []domain.Label {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Label, len(r.labels))
	copy(out, r.labels)
	return out
}

// Count возвращает число этикеток.
func (r *memoryLabelRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.labels)
}

// Ping подтверждает, что хранилище отвечает.
// Для in-memory хранилища достаточно захватить мьютекс.
func (r *memoryLabelRepository) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return ctx.Err()
}
