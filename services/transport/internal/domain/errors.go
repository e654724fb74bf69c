// Package domain содержит бизнес-сущности Transport Service.
package domain

import "errors"

// Доменные ошибки Transport Service.
var (
	// ErrAssignmentNotFound — назначение с указанным orderId не найдено.
	// На границе компенсации это НЕ ошибка: отмена неизвестного назначения
	// отвечает успехом с carrierId="UNKNOWN" (идемпотентность по отсутствию).
	ErrAssignmentNotFound = errors.New("назначение не найдено")
)
