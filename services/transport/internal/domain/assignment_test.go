// Package domain содержит unit тесты сущности Assignment.
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment_InitialState(t *testing.T) {
	a := NewAssignment("ORD-1", "CRR-42-FastShip")

	assert.Equal(t, "ORD-1", a.OrderID)
	assert.Equal(t, "CRR-42-FastShip", a.CarrierID)
	assert.True(t, a.Assigned)
	assert.Nil(t, a.Status, "статус не установлен до компенсации")
	assert.False(t, a.Cancelled())
}

func TestCancel_TerminalState(t *testing.T) {
	a := NewAssignment("ORD-1", "CRR-42-FastShip")

	a.Cancel()

	assert.False(t, a.Assigned)
	require.NotNil(t, a.Status)
	assert.Equal(t, StatusCancelled, *a.Status)
	assert.True(t, a.Cancelled())
	assert.Equal(t, "CRR-42-FastShip", a.CarrierID, "carrierId неизменяем при компенсации")
}

func TestCancel_Idempotent(t *testing.T) {
	a := NewAssignment("ORD-1", "CRR-42-FastShip")

	a.Cancel()
	first := *a

	// Повторная отмена оставляет то же терминальное состояние.
	a.Cancel()
	assert.Equal(t, first, *a)
}
