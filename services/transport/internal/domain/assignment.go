// Package domain содержит бизнес-сущности Transport Service.
package domain

// StatusCancelled — терминальный статус отменённого назначения.
const StatusCancelled = "CANCELLED"

// Assignment — назначение перевозчика на заказ, ресурс участника саги.
// Ключ — OrderID. CarrierID неизменяем после назначения: компенсация меняет
// только Assigned и Status. Запись не удаляется — история
// "был назначен, затем отменён" остаётся видимой в интроспекции.
type Assignment struct {
	OrderID   string  // Идентификатор заказа (ключ идемпотентности саги)
	CarrierID string  // Идентификатор перевозчика, неизменяем
	Assigned  bool    // true после назначения, false после компенсации
	Status    *string // nil до компенсации, "CANCELLED" после
}

// NewAssignment создаёт назначение в начальном состоянии:
// assigned=true, статус не установлен.
func NewAssignment(orderID, carrierID string) *Assignment {
	return &Assignment{
		OrderID:   orderID,
		CarrierID: carrierID,
		Assigned:  true,
	}
}

// Cancel переводит назначение в терминальное состояние
// assigned=false / status=CANCELLED. Повторный вызов оставляет то же
// терминальное состояние — компенсация идемпотентна. Обратного перехода
// в assigned не существует.
func (a *Assignment) Cancel() {
	status := StatusCancelled
	a.Assigned = false
	a.Status = &status
}

// Cancelled возвращает true, если назначение отменено.
func (a *Assignment) Cancelled() bool {
	return !a.Assigned && a.Status != nil && *a.Status == StatusCancelled
}
