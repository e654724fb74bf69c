// Package domain содержит бизнес-сущности Label Service.
package domain

import "errors"

// Доменные ошибки Label Service.
// Все ошибки терминальны на границе участника: повторы и компенсации —
// ответственность оркестратора.
var (
	// ErrLabelRequired — в данных саги отсутствует поле 'label'.
	ErrLabelRequired = errors.New("отсутствует 'label' в данных саги")

	// ErrLabelIDRequired — в данных саги отсутствует поле 'id'.
	ErrLabelIDRequired = errors.New("отсутствует 'id' в данных саги")

	// ErrLabelNotFound — этикетка с указанным id не найдена.
	ErrLabelNotFound = errors.New("этикетка не найдена")

	// ErrInjectedFailure — инжектированный сбой (симуляция ненадёжной зависимости).
	// Возникает строго до мутации хранилища: для хранилища такой вызов
	// неотличим от того, которого не было.
	ErrInjectedFailure = errors.New("симулированный сбой участника саги")

	// ErrCompensationUnsupported — компенсация для create_label не определена.
	// Пробел контракта обозначен явно, а не замаскирован выдуманной семантикой.
	ErrCompensationUnsupported = errors.New("компенсация create_label не поддерживается")
)
