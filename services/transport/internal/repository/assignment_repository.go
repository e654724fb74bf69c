// Package repository содержит слой доступа к данным Transport Service.
package repository

import (
	"context"
	"sync"

	"example.com/saga-participants/services/transport/internal/domain"
)

// AssignmentRepository — хранилище назначений перевозчиков, ключ — orderId.
// Состояние намеренно volatile: живёт в памяти процесса и теряется при
// рестарте.
type AssignmentRepository interface {
	// Upsert сохраняет назначение по его orderId, заменяя существующее.
	Upsert(ctx context.Context, assignment *domain.Assignment)

	// GetByOrderID возвращает назначение по orderId
	// или domain.ErrAssignmentNotFound.
	GetByOrderID(ctx context.Context, orderID string) (*domain.Assignment, error)

	// ListAll возвращает снимок всех назначений, ключ — orderId.
	ListAll(ctx context.Context) map[string]domain.Assignment

	// Ping проверяет, что хранилище отвечает (readiness probe).
	Ping(ctx context.Context) error
}

// memoryAssignmentRepository — in-memory реализация AssignmentRepository.
// Мутации сериализуются одним мьютексом.
type memoryAssignmentRepository struct {
	mu          sync.RWMutex
	assignments map[string]domain.Assignment
}

// NewAssignmentRepository создаёт пустое in-memory хранилище назначений.
func NewAssignmentRepository() AssignmentRepository {
	return &memoryAssignmentRepository{
		assignments: make(map[string]domain.Assignment),
	}
}

// Upsert сохраняет копию назначения по ключу orderId.
func (r *memoryAssignmentRepository) Upsert(_ context.Context, assignment *domain.Assignment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assignments[assignment.OrderID] = *assignment
}

// GetByOrderID возвращает копию назначения.
func (r *memoryAssignmentRepository) GetByOrderID(_ context.Context, orderID string) (*domain.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.assignments[orderID]
	if !ok {
		return nil, domain.ErrAssignmentNotFound
	}

	found := a
	return &found, nil
}

// ListAll возвращает копию всех назначений.
func (r *memoryAssignmentRepository) ListAll(_ context.Context) map[string]domain.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Assignment, len(r.assignments))
	for orderID, a := range r.assignments {
		out[orderID] = a
	}
	return out
}

// Ping подтверждает, что хранилище отвечает.
func (r *memoryAssignmentRepository) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return ctx.Err()
}
