// Package service содержит unit тесты бизнес-логики Transport Service.
package service

import (
	"context"
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/saga-participants/services/transport/internal/domain"
	"example.com/saga-participants/services/transport/internal/repository"
)

var (
	orderIDPattern   = regexp.MustCompile(`^ORD-\d{4}$`)
	carrierIDPattern = regexp.MustCompile(`^CRR-\d{2}-FastShip$`)
)

// newService создаёт сервис на свежем хранилище с фиксированным seed.
func newService() (TransportService, repository.AssignmentRepository) {
	repo := repository.NewAssignmentRepository()
	svc := NewTransportService(repo, WithRand(rand.New(rand.NewSource(1))))
	return svc, repo
}

func TestAssignCarrier_WithOrderID(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	a, err := svc.AssignCarrier(ctx, "ORD-1")
	require.NoError(t, err)

	assert.Equal(t, "ORD-1", a.OrderID, "переданный orderId сохраняется как есть")
	assert.Regexp(t, carrierIDPattern, a.CarrierID)
	assert.True(t, a.Assigned)
	assert.Nil(t, a.Status)

	stored, err := repo.GetByOrderID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, a.CarrierID, stored.CarrierID)
}

func TestAssignCarrier_GeneratesOrderIDWhenAbsent(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	a, err := svc.AssignCarrier(ctx, "")
	require.NoError(t, err)

	assert.Regexp(t, orderIDPattern, a.OrderID)

	_, err = repo.GetByOrderID(ctx, a.OrderID)
	assert.NoError(t, err, "назначение хранится под сгенерированным orderId")
}

func TestCancelAssignment_FlipsState(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	assigned, err := svc.AssignCarrier(ctx, "ORD-1")
	require.NoError(t, err)

	result, err := svc.CancelAssignment(ctx, "ORD-1")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", result.Status)
	assert.Equal(t, assigned.CarrierID, result.CarrierID, "компенсация возвращает исходный carrierId")
	assert.Equal(t, "ORD-1", result.OrderID)

	stored, err := repo.GetByOrderID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.False(t, stored.Assigned)
	require.NotNil(t, stored.Status)
	assert.Equal(t, domain.StatusCancelled, *stored.Status)
	assert.Equal(t, assigned.CarrierID, stored.CarrierID, "carrierId неизменяем")
}

func TestCancelAssignment_Idempotent(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	_, err := svc.AssignCarrier(ctx, "ORD-1")
	require.NoError(t, err)

	first, err := svc.CancelAssignment(ctx, "ORD-1")
	require.NoError(t, err)

	second, err := svc.CancelAssignment(ctx, "ORD-1")
	require.NoError(t, err)

	assert.Equal(t, first, second, "повторная компенсация даёт тот же результат")

	stored, err := repo.GetByOrderID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.True(t, stored.Cancelled(), "терминальное состояние сохраняется")
}

func TestCancelAssignment_UnknownTarget(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	// Компенсация действия, которого не было — успешный no-op.
	result, err := svc.CancelAssignment(ctx, "ORD-404")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", result.Status)
	assert.Equal(t, "UNKNOWN", result.CarrierID)
	assert.Equal(t, "ORD-404", result.OrderID)

	assert.Empty(t, repo.ListAll(ctx), "no-op не создаёт записей")
}

func TestListAssignments(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.AssignCarrier(ctx, "ORD-1")
	require.NoError(t, err)
	_, err = svc.AssignCarrier(ctx, "ORD-2")
	require.NoError(t, err)
	_, err = svc.CancelAssignment(ctx, "ORD-2")
	require.NoError(t, err)

	all := svc.ListAssignments(ctx)
	require.Len(t, all, 2)
	assert.True(t, all["ORD-1"].Assigned)
	assert.False(t, all["ORD-2"].Assigned, "история 'был назначен, теперь отменён' видна")
}
