// Package domain содержит бизнес-сущности Label Service.
package domain

// Label — этикетка, ресурс участника саги.
// Идентификатор назначается хранилищем монотонно при создании.
// Этикетка неизменяема после создания: обновления и удаления не предусмотрены,
// единственный переход состояния — "отсутствует → создана".
type Label struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Desc  string `json:"desc"`
}
